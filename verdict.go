package ooroo

// Verdict is the outcome of evaluating a plan against a context: the
// first terminal rule (in priority order) whose body evaluated true.
// A nil *Verdict means no terminal fired.
type Verdict struct {
	Terminal string
	Result   bool // always true when Verdict is non-nil
}

// Diagnostic flags an evaluation-time condition that never produces an
// error but is worth surfacing in a detailed report: a context field
// that was never set, or a field whose runtime value's kind doesn't
// match the kind every comparison in the ruleset expects of it.
type Diagnostic struct {
	Kind  string // "MissingField" | "TypeMismatch"
	Slot  int
	Field string
}

// RuleOutcome records one rule's boolean result within a Report.
type RuleOutcome struct {
	Name   string
	Result bool
}

// Report is EvaluateDetailed's richer result: the verdict, the rules
// actually walked before short-circuiting, any diagnostics observed
// along the way, a fresh correlation ID, and the wall-clock duration.
type Report struct {
	ID          string
	Verdict     *Verdict
	Evaluated   []RuleOutcome
	DurationNs  uint64
	Diagnostics []Diagnostic
}
