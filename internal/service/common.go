package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"strings"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
)

// FileUpload is an uploaded multipart file held in memory.
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Session is an issued bearer token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func issueSession(tokens *auth.TokenManager, id string, role domain.Role, email string) (*Session, error) {
	token, exp, err := tokens.GenerateToken(id, role, email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp}, nil
}

func actorOf(p auth.Principal) events.Actor {
	return events.Actor{ID: p.ID, Role: p.Role}
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// generateOTP returns a numeric code of the given length without a leading zero.
func generateOTP(length int) (string, error) {
	if length < 4 {
		length = 6
	}
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(lo, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, lo).String(), nil
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

func otpMatches(storedHash, code string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(hashOTP(code))) == 1
}
