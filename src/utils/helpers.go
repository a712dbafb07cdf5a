package utils

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"entremesa/src/db"
	"entremesa/src/models"
	"entremesa/src/types"
	"fmt"
	"log"
	"math/big"

	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
// bcrypt's comparison is constant-time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomToken returns n crypto-random alphanumeric characters. Session tokens
// are 60 characters; they are the only credential a staff client holds.
func RandomToken(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Fatalf("Error reading random bytes: %s\n", err.Error())
		}
		buf[i] = tokenAlphabet[idx.Int64()]
	}
	return string(buf)
}

// NewQRCode generates the unguessable token printed on a table. It doubles as
// the diner's session credential, so it must never be sequential.
func NewQRCode() string {
	return uuid.NewString()
}

// TableNumber formats 1-based table indexes as 001, 002, ...
func TableNumber(i int) string {
	return fmt.Sprintf("%03d", i)
}

// RenderQRImage encodes url into a PNG QR image and returns it as a base64
// data URL, ready for the frontend to drop into an <img>.
func RenderQRImage(url string) (string, error) {
	qrc, err := qrcode.New(url, qrcode.WithBuiltinImageEncoder(qrcode.PNG_FORMAT))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		log.Printf("Could not encode qrcode image: %s\n", err.Error())
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FindPrincipalBy looks column=value up across the four role tables in
// priority order and returns the first match as a role-tagged principal.
// A nil principal with a nil error means no table matched.
func FindPrincipalBy(ctx context.Context, column, value string) (*types.Principal, error) {
	store := db.GetClient()
	for _, role := range types.RolePriority {
		body, err := store.Select(ctx, role.Table(), "*", db.Filters{column: value})
		if err != nil {
			return nil, err
		}
		p, err := decodePrincipal(role, body)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, nil
}

func decodePrincipal(role types.RoleType, body []byte) (*types.Principal, error) {
	switch role {
	case types.ROLE_GERENTE:
		var rows []models.Manager
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		p := rows[0].ToPrincipal()
		return &p, nil
	case types.ROLE_MESERO:
		var rows []models.Waiter
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		p := rows[0].ToPrincipal()
		return &p, nil
	case types.ROLE_COCINA:
		var rows []models.Cook
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		p := rows[0].ToPrincipal()
		return &p, nil
	case types.ROLE_ADMIN:
		var rows []models.AppAdmin
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		p := rows[0].ToPrincipal()
		return &p, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}
