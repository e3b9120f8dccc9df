package utils

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"titanium/config"
	"titanium/database"
	"titanium/models"
	"titanium/models/subscription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUtilsTest(t *testing.T) {
	config.AppConfig = &config.Config{}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, ch := range otp {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestReferenceCode(t *testing.T) {
	ref := ReferenceCode()
	assert.True(t, strings.HasPrefix(ref, "titanium_"))
	assert.True(t, strings.HasSuffix(ref, time.Now().Format("20060102")))
	assert.NotEqual(t, ref, ReferenceCode())
}

func TestGetFileURL(t *testing.T) {
	config.AppConfig = &config.Config{UploadDir: "./uploads"}

	assert.Equal(t, "/uploads/course/2026/08/30/a.png",
		GetFileURL(filepath.Join("uploads", "course", "2026", "08", "30", "a.png")))
	assert.Equal(t, "", GetFileURL(""))

	// an absolute path cannot be made relative to the upload dir
	assert.Equal(t, "", GetFileURL(string(filepath.Separator)+filepath.Join("etc", "passwd")))
}

func TestExpireSubscriptions(t *testing.T) {
	setupUtilsTest(t)
	db := database.Database.Db

	user := models.User{Email: "lapsed@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	membership := subscription.Membership{Slug: "basic", MembershipType: subscription.MembershipBasic, Duration: 30}
	require.NoError(t, db.Create(&membership).Error)
	um := subscription.UserMembership{UserID: user.ID, MembershipID: membership.ID}
	require.NoError(t, db.Create(&um).Error)

	lapsed := subscription.Subscription{
		UserMembershipID: um.ID,
		ExpiresIn:        time.Now().AddDate(0, 0, -2),
		Status:           subscription.StatusActive,
	}
	require.NoError(t, db.Create(&lapsed).Error)

	user2 := models.User{Email: "current@example.com", Password: "x"}
	require.NoError(t, db.Create(&user2).Error)
	um2 := subscription.UserMembership{UserID: user2.ID, MembershipID: membership.ID}
	require.NoError(t, db.Create(&um2).Error)
	current := subscription.Subscription{
		UserMembershipID: um2.ID,
		ExpiresIn:        time.Now().AddDate(0, 0, 10),
		Status:           subscription.StatusActive,
	}
	require.NoError(t, db.Create(&current).Error)

	ExpireSubscriptions()

	var got subscription.Subscription
	require.NoError(t, db.First(&got, lapsed.ID).Error)
	assert.Equal(t, subscription.StatusExpired, got.Status)
	assert.True(t, got.ExpiryNotified)

	// the lapsed row is retained, not deleted
	var count int64
	db.Model(&subscription.Subscription{}).Count(&count)
	assert.EqualValues(t, 2, count)

	// use a fresh struct: got's primary key is already set to lapsed.ID and
	// gorm would add it as an extra condition alongside current.ID
	var gotCurrent subscription.Subscription
	require.NoError(t, db.First(&gotCurrent, current.ID).Error)
	assert.Equal(t, subscription.StatusActive, gotCurrent.Status)

	// a second sweep does not notify again
	ExpireSubscriptions()
	require.NoError(t, db.First(&got, lapsed.ID).Error)
	assert.True(t, got.ExpiryNotified)
}
