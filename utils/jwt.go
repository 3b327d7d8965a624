// utils/jwt.go
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/models"
)

const tokenIssuer = "campusevents-admin"

type AdminClaims struct {
	AdminID     primitive.ObjectID `json:"admin_id"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Permissions []string           `json:"permissions"`
	jwt.RegisteredClaims
}

var (
	jwtSecret      = []byte(getEnv("JWT_SECRET", "your-secret-key"))
	accessTokenTTL = 24 * time.Hour
)

// ConfigureJWT sets the signing secret and token lifetime from application config
func ConfigureJWT(secret string, ttl time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if ttl > 0 {
		accessTokenTTL = ttl
	}
}

// GenerateAdminToken creates a signed access token for a dashboard admin
func GenerateAdminToken(admin *models.Admin) (*models.TokenPair, error) {
	now := time.Now()
	claims := &AdminClaims{
		AdminID:     admin.ID,
		Email:       admin.Email,
		Role:        admin.Role,
		Permissions: admin.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   admin.ID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign admin token: %w", err)
	}

	return &models.TokenPair{
		AccessToken: signed,
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
		TokenType:   "Bearer",
	}, nil
}

// ValidateAdminToken validates admin JWT token
func ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		if claims.Issuer != tokenIssuer {
			return nil, errors.New("invalid token issuer")
		}
		return claims, nil
	}

	return nil, errors.New("invalid admin token")
}
