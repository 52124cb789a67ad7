package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"diabkit/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

// PushService delivers reminder notifications through SNS platform
// endpoints. With no platform ARN configured it degrades to a no-op so
// local installs work without AWS.
type PushService struct {
	db          *gorm.DB
	sns         *awssns.Client
	platformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	arn := os.Getenv("SNS_PLATFORM_ARN")
	if arn == "" {
		return &PushService{db: db}, nil
	}
	region := os.Getenv("AWS_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{db: db, sns: awssns.NewFromConfig(cfg), platformArn: arn}, nil
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a phone.
func (p *PushService) RegisterDevice(userID uint, platform, token string) (*models.UserDevice, error) {
	if p == nil || p.sns == nil {
		return nil, errors.New("push not configured")
	}
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, errors.New("unknown platform")
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		UpdatedAt:   time.Now(),
	}
	err = p.db.
		Where("token_hash = ?", dev.TokenHash).
		Assign(dev).
		FirstOrCreate(dev).Error
	return dev, err
}

func (p *PushService) PushToUser(userID uint, title, body string) {
	if p == nil || p.sns == nil {
		return
	}
	var devices []models.UserDevice
	if err := p.db.Where("user_id = ?", userID).Find(&devices).Error; err != nil {
		return
	}

	payload, _ := json.Marshal(map[string]string{"title": title, "body": body})
	for _, d := range devices {
		_, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			TargetArn: aws.String(d.EndpointARN),
			Message:   aws.String(string(payload)),
		})
		if err != nil {
			log.Printf("push to device %d failed: %v", d.ID, err)
		}
	}
}
