package domain

import (
	"github.com/cuongbtq/job-board/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is a decoded status change together with the delivery to settle
type Message struct {
	Event    *events.StatusChanged
	Delivery amqp.Delivery
}

// Recipient is who a status change e-mail goes to and what it is about
type Recipient struct {
	Email    string `db:"email"`
	Name     string `db:"name"`
	JobTitle string `db:"job_title"`
}
