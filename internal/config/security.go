package config

// SecurityConfig содержит параметры хеширования паролей.
type SecurityConfig struct {
	BCryptCost int `yaml:"bcrypt_cost" env:"NOTEPAD_BCRYPT_COST" env-default:"10"`
}
