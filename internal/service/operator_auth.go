package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrOperatorAuthDisabled = errors.New("operator auth disabled")
	ErrOperatorKeyInvalid   = errors.New("operator key invalid")
)

// OperatorAuth canjea la clave de operador (comparada contra un hash bcrypt) por un token de acceso.
type OperatorAuth struct {
	keyHash []byte
	jwtSvc  *JWTService
}

func NewOperatorAuth(keyHash string, jwtSvc *JWTService) *OperatorAuth {
	return &OperatorAuth{
		keyHash: []byte(strings.TrimSpace(keyHash)),
		jwtSvc:  jwtSvc,
	}
}

func (a *OperatorAuth) Enabled() bool {
	return a != nil && len(a.keyHash) > 0 && a.jwtSvc != nil
}

// IssueToken valida la clave y emite un token para el operador indicado.
func (a *OperatorAuth) IssueToken(operatorID, operatorKey string) (AccessToken, error) {
	if !a.Enabled() {
		return AccessToken{}, ErrOperatorAuthDisabled
	}
	if strings.TrimSpace(operatorKey) == "" {
		return AccessToken{}, ErrOperatorKeyInvalid
	}
	if err := bcrypt.CompareHashAndPassword(a.keyHash, []byte(operatorKey)); err != nil {
		return AccessToken{}, ErrOperatorKeyInvalid
	}
	if strings.TrimSpace(operatorID) == "" {
		operatorID = "operator"
	}
	return a.jwtSvc.GenerateAccessToken(operatorID)
}
