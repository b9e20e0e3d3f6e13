package waitlist

import "time"

// Entry es un registro de la landing. No tiene relación con el resto de los datos.
type Entry struct {
	ID        string
	Name      string `validate:"required,max=200"`
	Email     string `validate:"required,email"`
	Source    string `validate:"max=100"`
	Context   string `validate:"max=500"`
	CreatedAt time.Time
}
