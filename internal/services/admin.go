package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"reconnect-backend/internal/analytics"
	"reconnect-backend/internal/catalog"
	"reconnect-backend/internal/models"
	"reconnect-backend/internal/repository"
)

// pgPolicyRecursionCode is Postgres's "infinite recursion detected in
// policy" error, the signature of a misconfigured row-level-security
// setup for the admin role.
const pgPolicyRecursionCode = "42P17"

const inviteQueueKey = "jobs:invites"

// InviteJob is one queued invite email.
type InviteJob struct {
	Email         string `json:"email"`
	CompanyDomain string `json:"company_domain"`
}

type AdminService struct {
	userRepo    *repository.UserRepo
	sessionRepo *repository.SessionRepo
	redis       *redis.Client
}

func NewAdminService(userRepo *repository.UserRepo, sessionRepo *repository.SessionRepo, redisClient *redis.Client) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		redis:       redisClient,
	}
}

// Overview fetches the corpus and runs the aggregator. A policy
// recursion error is the one failure that surfaces to the caller: it
// means the deployment is misconfigured and zeroed charts would hide
// that. Every other fetch failure degrades to an empty slice so the
// dashboard still renders.
func (s *AdminService) Overview(ctx context.Context, now time.Time) (*analytics.Report, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		if isPolicyRecursion(err) {
			return nil, &PolicyError{Message: "Database policy recursion detected. Please apply the admin policy fix."}
		}
		log.Printf("admin: failed to load users, aggregating empty roster: %v", err)
		users = nil
	}

	sessions, err := s.sessionRepo.ListAll(ctx)
	if err != nil {
		if isPolicyRecursion(err) {
			return nil, &PolicyError{Message: "Database policy recursion detected. Please apply the admin policy fix."}
		}
		log.Printf("admin: failed to load sessions, aggregating empty corpus: %v", err)
		sessions = nil
	}

	return analytics.Aggregate(users, sessions, catalog.Protocols, now), nil
}

func isPolicyRecursion(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgPolicyRecursionCode
}

// EnqueueInvites validates addresses and pushes one job per invitee
// onto the Redis queue; the worker pool sends the emails.
func (s *AdminService) EnqueueInvites(ctx context.Context, emails []string, companyDomain string) (int, error) {
	queued := 0
	for _, email := range emails {
		if !emailRegex.MatchString(email) {
			continue
		}
		job, err := json.Marshal(InviteJob{Email: email, CompanyDomain: companyDomain})
		if err != nil {
			continue
		}
		if err := s.redis.LPush(ctx, inviteQueueKey, job).Err(); err != nil {
			return queued, err
		}
		queued++
	}
	if queued == 0 {
		return 0, &ValidationError{Fields: map[string]string{"emails": "No valid email addresses provided"}}
	}
	return queued, nil
}

// ListUsersForExport returns the roster for CSV export, newest first.
func (s *AdminService) ListUsersForExport(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		if isPolicyRecursion(err) {
			return nil, &PolicyError{Message: "Database policy recursion detected. Please apply the admin policy fix."}
		}
		return nil, err
	}
	return users, nil
}
