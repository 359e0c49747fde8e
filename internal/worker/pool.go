package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reconnect-backend/internal/services"
)

// Pool drains the admin invite queue and sends invite emails off the
// request path. Workers block on the queue with a timeout so Stop is
// observed within one poll interval.
type Pool struct {
	redis       *redis.Client
	email       *services.EmailService
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, email *services.EmailService, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		email:       email,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d invite worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Invite worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, "jobs:invites").Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job services.InviteJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Invite worker %d: failed to parse job: %v", id, err)
			continue
		}

		if err := p.email.SendInviteEmail(job.Email, job.CompanyDomain); err != nil {
			log.Printf("Invite worker %d: failed to send invite to %s: %v", id, job.Email, err)
			continue
		}

		log.Printf("Invite worker %d: invite sent to %s", id, job.Email)
	}
}
