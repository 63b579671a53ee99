package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
)

// JWTVerifier validates HS256-signed tokens against a shared secret. Meant
// for development and test deployments where no remote provider is reachable.
type JWTVerifier struct {
	secret []byte
	logger *zap.Logger
}

func NewJWTVerifier(secret string, logger *zap.Logger) *JWTVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JWTVerifier{
		secret: []byte(secret),
		logger: logger,
	}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		v.logger.Warn("invalid bearer token", zap.Error(err))
		return nil, domain.ErrUnauthorized
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.SubjectID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if claims.SubjectID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
