package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCache marca fallas de infraestructura del cache. Una clave ausente es
// un miss, nunca un ErrCache: los flujos de auth fallan cerrado solo ante
// errores reales de conexión u operación.
var ErrCache = errors.New("cache operation failed")

const (
	verifyPrefix = "verify#"
	resetPrefix  = "reset#"

	// VerificationTTL limita la vida de un código de verificación.
	VerificationTTL = 6 * time.Hour
	// ResetTTL limita la copia volátil de un reset token.
	ResetTTL = time.Hour
	// ResetFreshness es la ventana de frescura del reset token, más
	// estricta que el TTL a propósito. El límite exacto cuenta como vencido.
	ResetFreshness = 5 * time.Minute
)

// compareDelScript compara y borra en un solo round trip para que dos
// redenciones concurrentes no consuman el mismo valor dos veces.
// Devuelve 1 si consumió, -1 si el valor no coincide, 0 si la clave no existe.
const compareDelScript = `
local v = redis.call("GET", KEYS[1])
if not v then
  return 0
end
if v ~= ARGV[1] then
  return -1
end
redis.call("DEL", KEYS[1])
return 1
`

// ResetRecord es el valor JSON guardado bajo reset#<email>.
type ResetRecord struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

type redisCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// AuthCache es el adaptador volátil para códigos de verificación y reset tokens.
type AuthCache struct {
	client redisCmdable
}

func NewAuthCache(client *redis.Client) *AuthCache {
	return &AuthCache{client: client}
}

func (c *AuthCache) PutVerificationCode(ctx context.Context, email, code string) error {
	if err := c.client.Set(ctx, verifyPrefix+email, code, VerificationTTL).Err(); err != nil {
		return fmt.Errorf("%w: set verification code: %v", ErrCache, err)
	}
	return nil
}

// RedeemVerificationCode consume el código si y solo si coincide. Un código
// equivocado no borra la clave: los intentos restantes dentro del TTL siguen
// siendo válidos.
func (c *AuthCache) RedeemVerificationCode(ctx context.Context, email, submitted string) (bool, error) {
	res, err := c.client.Eval(ctx, compareDelScript, []string{verifyPrefix + email}, submitted).Int()
	if err != nil {
		return false, fmt.Errorf("%w: redeem verification code: %v", ErrCache, err)
	}
	return res == 1, nil
}

func (c *AuthCache) PutResetToken(ctx context.Context, email string, rec ResetRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode reset record: %v", ErrCache, err)
	}
	if err := c.client.Set(ctx, resetPrefix+email, raw, ResetTTL).Err(); err != nil {
		return fmt.Errorf("%w: set reset token: %v", ErrCache, err)
	}
	return nil
}

// RedeemResetToken devuelve el token consumido o cadena vacía si no hay
// redención posible (ausente, mezclado, viejo o perdido en una carrera).
func (c *AuthCache) RedeemResetToken(ctx context.Context, email, submitted string) (string, error) {
	raw, err := c.client.Get(ctx, resetPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: get reset token: %v", ErrCache, err)
	}

	var rec ResetRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return "", nil
	}
	if rec.Token != submitted {
		return "", nil
	}
	if time.Now().UTC().Sub(rec.IssuedAt) >= ResetFreshness {
		return "", nil
	}

	res, err := c.client.Eval(ctx, compareDelScript, []string{resetPrefix + email}, raw).Int()
	if err != nil {
		return "", fmt.Errorf("%w: redeem reset token: %v", ErrCache, err)
	}
	if res != 1 {
		return "", nil
	}
	return rec.Token, nil
}
