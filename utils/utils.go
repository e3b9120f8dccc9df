package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// ReferenceCode builds a unique payment reference of the form
// titanium_<10 uuid chars><yyyymmdd>
func ReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "titanium_" + raw[:10] + time.Now().Format("20060102")
}
