package present

// Action is one of the operations a shell can offer.
type Action int

const (
	ActionFactorial Action = iota
	ActionPrimeCheck
)

// Actions lists every action in display order.
func Actions() []Action {
	return []Action{ActionFactorial, ActionPrimeCheck}
}

func (a Action) String() string {
	switch a {
	case ActionFactorial:
		return "factorial"
	case ActionPrimeCheck:
		return "prime"
	default:
		return "unknown"
	}
}

// Label is the default button text.
func (a Action) Label() string {
	if a == ActionPrimeCheck {
		return "Prime Check"
	}
	return "Factorial"
}

// Description is the default tooltip text.
func (a Action) Description() string {
	if a == ActionPrimeCheck {
		return "Checks if the number is prime."
	}
	return "Calculates the factorial of n."
}

// DialogTitle is the default title of the action's input dialog.
func (a Action) DialogTitle() string {
	if a == ActionPrimeCheck {
		return "Prime Number Checker"
	}
	return "Factorial Calculator"
}
