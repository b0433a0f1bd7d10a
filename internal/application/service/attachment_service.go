package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/domain/entity"
)

// ErrInvalidDocument is returned when an uploaded file fails validation.
var ErrInvalidDocument = errors.New("invalid supporting document")

// AttachmentService forwards supporting documents to M-Files and mirrors
// their metadata locally
type AttachmentService interface {
	Upload(ctx context.Context, hash, fileName, contentType string, content []byte, viewer Viewer) (*entity.Attachment, error)
	List(ctx context.Context, hash string) ([]*entity.Attachment, error)
}

type attachmentServiceImpl struct {
	txnRepo  port.TransactionRepository
	attRepo  port.AttachmentRepository
	docs     port.DocumentClient
	group    string
	class    string
	logger   Logger
}

// NewAttachmentService creates a new AttachmentService. group and class
// address the M-Files vault the documents land in.
func NewAttachmentService(
	txnRepo port.TransactionRepository,
	attRepo port.AttachmentRepository,
	docs port.DocumentClient,
	group, class string,
	logger Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		txnRepo: txnRepo,
		attRepo: attRepo,
		docs:    docs,
		group:   group,
		class:   class,
		logger:  logger,
	}
}

func (s *attachmentServiceImpl) Upload(ctx context.Context, hash, fileName, contentType string, content []byte, viewer Viewer) (*entity.Attachment, error) {
	txn, err := s.txnRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrNotFound
	}

	if err := validateDocument(fileName, content); err != nil {
		return nil, err
	}

	att := &entity.Attachment{
		TransactionID: txn.ID,
		DotsNumber:    txn.DotsNumber,
		FileName:      fileName,
		FileSize:      int64(len(content)),
		ContentType:   contentType,
		Status:        entity.AttachmentStatusPending,
		UploadedBy:    viewer.Email,
		CreatedAt:     time.Now(),
	}
	if err := s.attRepo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}

	mfilesID, err := s.docs.Upload(ctx, s.group, s.class, txn.DotsNumber, fileName, bytes.NewReader(content))
	if err != nil {
		s.logger.Error("M-Files upload failed", "error", err, "dots_number", txn.DotsNumber, "file", fileName)
		if markErr := s.attRepo.MarkFailed(ctx, att.ID, err.Error()); markErr != nil {
			s.logger.Error("Failed to mark attachment failed", "error", markErr, "attachment_id", att.ID)
		}
		return nil, fmt.Errorf("upload to m-files: %w", err)
	}

	if err := s.attRepo.MarkUploaded(ctx, att.ID, mfilesID); err != nil {
		return nil, fmt.Errorf("mark uploaded: %w", err)
	}
	att.MFilesID = mfilesID
	att.Status = entity.AttachmentStatusUploaded

	s.logger.Info("Attachment uploaded", "dots_number", txn.DotsNumber, "file", fileName, "mfiles_id", mfilesID)
	return att, nil
}

func (s *attachmentServiceImpl) List(ctx context.Context, hash string) ([]*entity.Attachment, error) {
	txn, err := s.txnRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrNotFound
	}
	return s.attRepo.GetByTransactionID(ctx, txn.ID)
}

// validateDocument rejects empty uploads and unparseable PDFs before they
// reach M-Files. Non-PDF files pass through on size alone.
func validateDocument(fileName string, content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidDocument)
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return nil
	}

	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return fmt.Errorf("%w: pdf has no pages", ErrInvalidDocument)
	}
	return nil
}
