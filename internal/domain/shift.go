package domain

// Shift is a scheduled work interval for one employee at one store on one
// date. Date is YYYY-MM-DD, StartTime and EndTime are 24-hour HH:MM. Values
// imported from CSV are stored as given.
type Shift struct {
	ID         string `json:"id" yaml:"id" validate:"required"`
	EmployeeID string `json:"employeeId" yaml:"employeeId" validate:"required"`
	StoreID    string `json:"storeId" yaml:"storeId" validate:"required"`
	Date       string `json:"date" yaml:"date" validate:"required"`
	StartTime  string `json:"startTime" yaml:"startTime"`
	EndTime    string `json:"endTime" yaml:"endTime"`
	Position   string `json:"position" yaml:"position"`
}

// ShiftInput carries the fields of a shift before an id is assigned.
type ShiftInput struct {
	EmployeeID string `json:"employeeId" yaml:"employeeId"`
	StoreID    string `json:"storeId" yaml:"storeId"`
	Date       string `json:"date" yaml:"date"`
	StartTime  string `json:"startTime" yaml:"startTime"`
	EndTime    string `json:"endTime" yaml:"endTime"`
	Position   string `json:"position" yaml:"position"`
}

// ShiftPatch is a partial update; nil fields are left untouched.
type ShiftPatch struct {
	EmployeeID *string `json:"employeeId,omitempty"`
	StoreID    *string `json:"storeId,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	Position   *string `json:"position,omitempty"`
}

// Apply copies the set fields of p onto s.
func (p ShiftPatch) Apply(s *Shift) {
	if p.EmployeeID != nil {
		s.EmployeeID = *p.EmployeeID
	}
	if p.StoreID != nil {
		s.StoreID = *p.StoreID
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Position != nil {
		s.Position = *p.Position
	}
}

// WithID materializes the input as a Shift.
func (in ShiftInput) WithID(id string) Shift {
	return Shift{
		ID:         id,
		EmployeeID: in.EmployeeID,
		StoreID:    in.StoreID,
		Date:       in.Date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Position:   in.Position,
	}
}

// AssignedTo reports whether the shift belongs to u under either its
// account id or its employee id.
func (s Shift) AssignedTo(u User) bool {
	return s.EmployeeID == u.ID || (u.EmployeeID != "" && s.EmployeeID == u.EmployeeID)
}
