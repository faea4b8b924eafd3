package models

// Actor is a cast member record.
type Actor struct {
	ActorID     int     `json:"ActorID"`
	Name        string  `json:"Name"`
	Gender      *string `json:"Gender"`
	BirthDate   *string `json:"BirthDate"`
	Nationality *string `json:"Nationality"`
	PhotoURL    *string `json:"PhotoURL"`
}

// Director is a director record. It has the same shape as Actor.
type Director struct {
	DirectorID  int     `json:"DirectorID"`
	Name        string  `json:"Name"`
	Gender      *string `json:"Gender"`
	BirthDate   *string `json:"BirthDate"`
	Nationality *string `json:"Nationality"`
	PhotoURL    *string `json:"PhotoURL"`
}

// PersonInput is the editable part of an actor or director.
type PersonInput struct {
	Name        string  `json:"Name" validate:"required,max=100"`
	Gender      *string `json:"Gender"`
	BirthDate   *string `json:"BirthDate" validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"Nationality"`
}

// Photo returns the server-relative photo path, or "".
func (a *Actor) Photo() string {
	if a == nil || a.PhotoURL == nil {
		return ""
	}
	return *a.PhotoURL
}

// Photo returns the server-relative photo path, or "".
func (d *Director) Photo() string {
	if d == nil || d.PhotoURL == nil {
		return ""
	}
	return *d.PhotoURL
}
