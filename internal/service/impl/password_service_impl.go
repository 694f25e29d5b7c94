package impl

import "golang.org/x/crypto/bcrypt"

type PasswordServiceBcrypt struct {
	cost int
}

func NewPasswordServiceBcrypt() *PasswordServiceBcrypt {
	return &PasswordServiceBcrypt{cost: bcrypt.DefaultCost}
}

func (p *PasswordServiceBcrypt) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *PasswordServiceBcrypt) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
