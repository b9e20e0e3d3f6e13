package auth

// Claims representa la información extraída del token.
// Role y Name vienen de user_metadata (se fijan en el sign-up).
type Claims struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

// Session es lo que devuelve el proveedor de identidad al hacer sign-in / sign-up.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         Claims
}

// SignUpInput viaja como metadata al proveedor.
type SignUpInput struct {
	Email    string
	Password string
	Role     string
	Name     string
}
