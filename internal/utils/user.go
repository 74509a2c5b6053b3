package utils

import (
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

var avatarEmojis = []string{"🌱", "🌿", "🍃", "🌵", "🌴", "🌳", "🌲", "🪴", "🌻", "🌷", "🌼", "🍀"}

// GetRandomEmoji returns a random plant emoji for a default avatar.
func GetRandomEmoji() string {
	return avatarEmojis[rand.Intn(len(avatarEmojis))]
}

// AvatarEmojis lists the avatars a user may pick from.
func AvatarEmojis() []string {
	out := make([]string, len(avatarEmojis))
	copy(out, avatarEmojis)
	return out
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
