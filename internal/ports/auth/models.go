package auth

// Claims representa al voluntario detrás del request.
type Claims struct {
	UserID   string
	Email    string
	Initials string
}
