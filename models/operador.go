package models

// Roles reconocidos por la política de autorización
const (
	RolAdmin     = "admin"
	RolRecepcion = "recepcion"
	RolLectura   = "lectura"
)

// Operador es una cuenta del personal habilitada para usar la API
type Operador struct {
	Email        string `json:"email" yaml:"email"`
	Nombre       string `json:"nombre" yaml:"nombre"`
	Rol          string `json:"rol" yaml:"rol"`
	PasswordHash string `json:"-" yaml:"password_hash"`
	// TOTPSecret habilita el segundo factor cuando no está vacío
	TOTPSecret string `json:"-" yaml:"totp_secret"`
}

// LoginRequest representa la solicitud de login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfa_code,omitempty"`
}

// LoginResponse representa la respuesta del login
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int      `json:"expires_in"` // segundos
	Operador    Operador `json:"operador"`
}
