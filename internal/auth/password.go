package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades brute-force resistance against interactive login latency.
// Tunable per deployment; 10 keeps logins sub-second on typical hardware.
const bcryptCost = 10

// ClientHash derives the password substitute the browser sends over the wire:
// hex(HMAC-SHA-512(key=publicSalt, msg=password)). The server only ever sees
// and stores hashes of this value, never the plaintext. This is defense in
// depth against a compromised server or logging layer, not a substitute for
// transport security: a captured client hash can be replayed.
func ClientHash(password, publicSalt string) string {
	mac := hmac.New(sha512.New, []byte(publicSalt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// HashPassword runs the slow adaptive hash over a client-hashed password.
// Each call embeds a fresh internal salt, so two hashes of the same input
// never compare equal.
func HashPassword(clientHashedPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(clientHashedPassword), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a client-hashed password against a stored hash.
func CheckPassword(clientHashedPassword, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(clientHashedPassword)) == nil
}
