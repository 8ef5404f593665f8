package domain

import "time"

// Person is a single directory record. ImagePath and ResumePath point at
// files under the uploads directory and may be empty.
type Person struct {
	ID         int64
	Name       string
	Email      string
	Age        int
	City       string
	Gender     string
	Skills     string
	ImagePath  string
	ResumePath string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
