package models

import "time"

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        int64     `db:"id" json:"id"`
	Name      *string   `db:"name" json:"name,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Subject   *string   `db:"subject" json:"subject,omitempty"`
	Message   *string   `db:"message" json:"message,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
