package models

// All lists every persisted model, in dependency order, for sqlite schema setup.
func All() []any {
	return []any{
		&Learner{},
		&Admin{},
		&Course{},
		&Purchase{},
		&Entitlement{},
		&Candidate{},
		&Event{},
	}
}
