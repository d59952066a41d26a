package deposits

type Severity string

const (
	SeverityApproved Severity = "approved"
	SeverityShipped  Severity = "shipped"
	SeverityRefused  Severity = "refused"
)

// Effects is what a single flag toggle must do besides flipping the bit:
// AppendStock books the deposit into the ledger (once, ever); Weekly is +1
// to apply the resource totals to the paid aggregate, -1 for the exact
// inverse, 0 to leave it alone.
type Effects struct {
	AppendStock bool
	Weekly      int
	Notify      bool
	Severity    Severity
}

// Decide maps one flag toggle to its side effects. Pure; the whole
// notification contract lives here so it can be tested without a store.
//
//	refused -> true                          notify "refused"
//	confirmed -> true, manufactured already  notify "shipped"
//	confirmed -> true otherwise              notify "approved"
//	manufactured -> true, confirmed already  notify "shipped"
//	manufactured -> true otherwise           silent
//	metaPaid either way                      silent, weekly +1/-1
//	any flag -> false                        silent
func Decide(prev Flags, changed Flag, newValue bool) Effects {
	var e Effects

	switch changed {
	case FlagMetaPaid:
		if newValue {
			e.Weekly = 1
		} else {
			e.Weekly = -1
		}

	case FlagConfirmed:
		if newValue {
			// A refused deposit stays refused; confirming it must not
			// book stock.
			e.AppendStock = !prev.Refused
			e.Notify = true
			if prev.Manufactured {
				e.Severity = SeverityShipped
			} else {
				e.Severity = SeverityApproved
			}
		}

	case FlagManufactured:
		if newValue && prev.Confirmed {
			e.Notify = true
			e.Severity = SeverityShipped
		}

	case FlagRefused:
		if newValue {
			e.Notify = true
			e.Severity = SeverityRefused
		}
	}

	return e
}
