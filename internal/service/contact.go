package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"HerShield/internal/model"
	"HerShield/internal/model/dto"
	"HerShield/internal/queue"
	"HerShield/internal/repository"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/logger"
	"HerShield/pkg/snowflake"
	"HerShield/utils"
)

// api 中设计的 user_ID 是 public_id

const maxContacts = 10

var (
	contactService *ContactService
	contactOnce    sync.Once
)

func Contact() *ContactService {
	contactOnce.Do(func() {
		contactService = &ContactService{
			users: repository.NewUserRepository(),
		}
	})

	return contactService
}

type ContactService struct {
	users *repository.UserRepository
}

// CreateContact 创建一个新的联系人，手机号密文入库。
// 手机号在这里不做 E.164 校验，原样保存用户录入，广播时逐个校验。
// 创建成功后投递一条知会短信任务到消息队列。
func (s *ContactService) CreateContact(
	ctx context.Context,
	userID string,
	req dto.CreateContactRequest,
) (*dto.CreateContactResponse, error) {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return nil, pkgerrors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return nil, err
	}

	contacts := user.EmergencyContacts

	if len(contacts) >= maxContacts {
		return nil, pkgerrors.ContactLimitReached
	}

	phoneCipherBase64, err := utils.EncryptPhone(req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}

	phoneHash := utils.HashPhone(req.Phone)

	contactID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact id: %w", err)
	}

	newContact := model.EmergencyContact{
		ContactID:         contactID,
		Name:              req.Name,
		Relation:          req.Relation,
		Email:             req.Email,
		PhoneCipherBase64: phoneCipherBase64,
		PhoneHash:         phoneHash,
		CreatedAt:         time.Now().Format(time.RFC3339),
	}

	updatedContacts := append(contacts, newContact)

	if err := s.users.UpdateContacts(ctx, userIDInt, updatedContacts); err != nil {
		return nil, fmt.Errorf("failed to update user contacts: %w", err)
	}

	// 知会短信走队列，失败只记日志，不影响创建
	msg := model.ContactAddedMessage{
		MessageID:         uuid.NewString(),
		UserPublicID:      user.PublicID,
		AccountName:       user.Username,
		ContactName:       newContact.Name,
		PhoneCipherBase64: newContact.PhoneCipherBase64,
	}
	if err := queue.PublishContactAdded(ctx, msg); err != nil {
		logger.Logger.Warn("Failed to publish contact added message",
			zap.String("user_id", userID),
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	}

	return &dto.CreateContactResponse{
		ContactID:   newContact.ContactID,
		Name:        newContact.Name,
		Relation:    newContact.Relation,
		Email:       newContact.Email,
		PhoneMasked: utils.MaskPhone(req.Phone),
	}, nil
}

func (s *ContactService) ListContacts(
	ctx context.Context,
	userID string,
) ([]dto.ContactItem, error) {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return nil, pkgerrors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return nil, err
	}

	contacts := user.EmergencyContacts

	if len(contacts) == 0 {
		return []dto.ContactItem{}, nil
	}

	result := make([]dto.ContactItem, 0, len(contacts))

	for _, contact := range contacts {
		phone, err := decryptContactPhone(contact)
		if err != nil {
			logger.Logger.Warn("Failed to decrypt contact phone",
				zap.String("user_id", userID),
				zap.Int64("contact_id", contact.ContactID),
				zap.Error(err),
			)
			continue
		}

		createdAt, _ := time.Parse(time.RFC3339, contact.CreatedAt)

		result = append(result, dto.ContactItem{
			ContactID:   contact.ContactID,
			Name:        contact.Name,
			Relation:    contact.Relation,
			Email:       contact.Email,
			PhoneMasked: utils.MaskPhone(phone),
			CreatedAt:   createdAt,
		})
	}

	return result, nil
}

func (s *ContactService) DeleteContact(
	ctx context.Context,
	userID string,
	contactID int64,
) error {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return pkgerrors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return err
	}

	contacts := user.EmergencyContacts

	newContacts := make(model.EmergencyContacts, 0, len(contacts))
	found := false

	for _, contact := range contacts {
		if contact.ContactID == contactID {
			found = true
			continue
		}
		newContacts = append(newContacts, contact)
	}

	if !found {
		return pkgerrors.ContactNotFound
	}

	if err := s.users.UpdateContacts(ctx, userIDInt, newContacts); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	logger.Logger.Info("Contact deleted",
		zap.String("user_id", userID),
		zap.Int64("contact_id", contactID),
	)

	return nil
}

// Snapshot 返回广播流程使用的联系人只读快照，手机号解密为用户录入的原始文本。
// 解密失败的联系人保留在快照里，手机号为空串，由广播流程按坏号码处理，邮件照发。
func (s *ContactService) Snapshot(ctx context.Context, userID string) (string, []model.Contact, error) {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return "", nil, pkgerrors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return "", nil, err
	}

	snapshot := make([]model.Contact, 0, len(user.EmergencyContacts))
	for _, contact := range user.EmergencyContacts {
		phone, err := decryptContactPhone(contact)
		if err != nil {
			logger.Logger.Warn("Failed to decrypt contact phone for broadcast",
				zap.String("user_id", userID),
				zap.Int64("contact_id", contact.ContactID),
				zap.Error(err),
			)
			phone = ""
		}

		snapshot = append(snapshot, model.Contact{
			Name:     contact.Name,
			Email:    contact.Email,
			MobileNo: phone,
			Relation: contact.Relation,
		})
	}

	return user.Username, snapshot, nil
}

func decryptContactPhone(contact model.EmergencyContact) (string, error) {
	phoneCipherBytes, err := base64.StdEncoding.DecodeString(contact.PhoneCipherBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode phone cipher: %w", err)
	}

	return utils.DecryptPhone(phoneCipherBytes)
}
