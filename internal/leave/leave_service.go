package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-tams/internal/events"
	leaveerrors "go-tams/internal/leave/errors"
	"go-tams/internal/messaging/kafka"
	"go-tams/internal/shared/contextutil"
	"go-tams/internal/shared/daterange"
	"go-tams/internal/shared/query"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const statsCacheTTL = 10 * time.Minute

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetUserLeaves(ctx context.Context, employeeID string, f Filter, p query.Params) (query.Page[LeaveResponse], error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, id, approverID string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	AddComment(ctx context.Context, id, employeeID, text string) (LeaveResponse, error)
	Query(ctx context.Context, f Filter, p query.Params) (query.Page[LeaveResponse], error)
	GetStatistics(ctx context.Context, employeeID string, year int) (Statistics, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("employee_id", employeeID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrOverlappingLeave
	}

	now := time.Now().UTC()
	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Type:       req.Type,
		StartDate:  startDate,
		EndDate:    endDate,
		Duration:   daterange.InclusiveDays(startDate, endDate),
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	for _, a := range req.Attachments {
		l.Attachments = append(l.Attachments, LeaveAttachment{
			ID:         uuid.New(),
			LeaveID:    l.ID,
			Name:       a.Name,
			URL:        a.URL,
			UploadedAt: now,
		})
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("duration", l.Duration),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetUserLeaves(ctx context.Context, employeeID string, f Filter, p query.Params) (query.Page[LeaveResponse], error) {
	f.EmployeeID = &employeeID
	page, err := s.repo.FindPage(ctx, f, p)
	if err != nil {
		return query.Page[LeaveResponse]{}, err
	}
	return mapPage(page), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, approverID string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave status requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("target_status", req.Status),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidApproverID
	}
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidTargetStatus
	}
	if req.Status == StatusRejected && (req.RejectionReason == nil || *req.RejectionReason == "") {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("update leave status already processed",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	now := time.Now().UTC()
	l.Status = req.Status
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	if req.Status == StatusRejected {
		l.RejectionReason = req.RejectionReason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveStatusChangedEvent{
			EventType:  "leave.status_changed",
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			Status:     l.Status,
			ApprovedBy: approverID,
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveStatusChangedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create leave outbox event failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.invalidateStatistics(ctx, l.EmployeeID.String(), l.StartDate.Year())

	s.logger.Info("update leave status success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) AddComment(ctx context.Context, id, employeeID, text string) (LeaveResponse, error) {
	authorUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add comment begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Comments stay open after the request is resolved.
	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	comment := &LeaveComment{
		ID:         uuid.New(),
		LeaveID:    l.ID,
		EmployeeID: authorUUID,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := qtx.AddComment(ctx, comment); err != nil {
		s.logger.Error("add comment persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add comment commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Comments = append(l.Comments, *comment)
	s.logger.Info("add comment success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Query(ctx context.Context, f Filter, p query.Params) (query.Page[LeaveResponse], error) {
	page, err := s.repo.FindPage(ctx, f, p)
	if err != nil {
		return query.Page[LeaveResponse]{}, err
	}
	return mapPage(page), nil
}

func (s *service) GetStatistics(ctx context.Context, employeeID string, year int) (Statistics, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	cacheKey := statsCacheKey(employeeID, year)
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var stats Statistics
			if err := json.Unmarshal([]byte(val), &stats); err == nil {
				return stats, nil
			}
		}
	}

	// Collapse concurrent cache misses for the same employee-year into one
	// store read.
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		leaves, err := s.repo.FindApprovedWithinYear(ctx, employeeID, year)
		if err != nil {
			return Statistics{}, err
		}

		stats := sumStatistics(leaves)

		if s.rdb != nil {
			if payload, err := json.Marshal(stats); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, statsCacheTTL)
			}
		}
		return stats, nil
	})
	if err != nil {
		return Statistics{}, err
	}
	return v.(Statistics), nil
}

func sumStatistics(leaves []Leave) Statistics {
	var stats Statistics
	for _, l := range leaves {
		switch l.Type {
		case "annual":
			stats.Annual += l.Duration
		case "sick":
			stats.Sick += l.Duration
		case "personal":
			stats.Personal += l.Duration
		case "maternity":
			stats.Maternity += l.Duration
		case "paternity":
			stats.Paternity += l.Duration
		case "bereavement":
			stats.Bereavement += l.Duration
		case "unpaid":
			stats.Unpaid += l.Duration
		}
		stats.Total += l.Duration
	}
	return stats
}

func (s *service) invalidateStatistics(ctx context.Context, employeeID string, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey(employeeID, year)).Err(); err != nil {
		s.logger.Warn("invalidate statistics cache failed",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Error(err),
		)
	}
}

func statsCacheKey(employeeID string, year int) string {
	return fmt.Sprintf("leave:stats:%s:%d", employeeID, year)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t.UTC(), nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Type:       l.Type,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Duration:   l.Duration,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	for _, a := range l.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			Name:       a.Name,
			URL:        a.URL,
			UploadedAt: a.UploadedAt.Format(time.RFC3339),
		})
	}
	for _, c := range l.Comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			EmployeeID: c.EmployeeID.String(),
			Text:       c.Text,
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapPage(p query.Page[Leave]) query.Page[LeaveResponse] {
	return query.Page[LeaveResponse]{
		Results:      mapToListResponse(p.Results),
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}
