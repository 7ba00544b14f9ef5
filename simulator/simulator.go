// Package simulator replays randomized user sessions against the
// client engine and reports latency and error statistics.
package simulator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"broad-forum/internal/app"
	"broad-forum/internal/engine/actors"
	"broad-forum/internal/forms"
)

type SimConfig struct {
	SimulationTime   time.Duration
	TickInterval     time.Duration
	BrowseFrequency  float64 // probability per tick for each activity
	VoteFrequency    float64
	CommentFrequency float64
	PostFrequency    float64
	JoinFrequency    float64
	ChatFrequency    float64
}

func DefaultConfig() SimConfig {
	return SimConfig{
		SimulationTime:   30 * time.Second,
		TickInterval:     100 * time.Millisecond,
		BrowseFrequency:  0.8,
		VoteFrequency:    0.5,
		CommentFrequency: 0.2,
		PostFrequency:    0.05,
		JoinFrequency:    0.1,
		ChatFrequency:    0.05,
	}
}

type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	RequestLatencies []time.Duration
	TotalBrowses     int
	TotalVotes       int
	TotalComments    int
	TotalPosts       int
	TotalJoins       int
	TotalChats       int
	LoginPrompts     int
}

// Simulator drives one client session from several goroutines at once,
// which also exercises the engine's mailbox serialization.
type Simulator struct {
	config SimConfig
	stats  *SimulationStats
	client *app.Client
}

func NewSimulator(config SimConfig, client *app.Client) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: client,
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation for %v...", s.config.SimulationTime)

	ctx, cancel := context.WithTimeout(ctx, s.config.SimulationTime)
	defer cancel()

	// A visitor hits the login wall first, then signs in.
	if err := s.exerciseLoginWall(); err != nil {
		return fmt.Errorf("login wall check failed: %v", err)
	}
	if err := s.login(); err != nil {
		return fmt.Errorf("login failed: %v", err)
	}

	var wg sync.WaitGroup
	activities := []func(context.Context){
		s.simulateBrowsing,
		s.simulateVotes,
		s.simulateComments,
		s.simulatePosts,
		s.simulateMembership,
		s.simulateChat,
	}
	for _, activity := range activities {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(activity)
	}

	wg.Wait()
	return nil
}

func (s *Simulator) exerciseLoginWall() error {
	community := s.client.Communities()[0]
	_, err := s.client.ToggleJoin(community.ID)
	if err == nil {
		return fmt.Errorf("expected the login prompt for an anonymous join")
	}
	s.stats.mu.Lock()
	s.stats.LoginPrompts++
	s.stats.mu.Unlock()
	return nil
}

func (s *Simulator) login() error {
	start := time.Now()
	_, err := s.client.Login(forms.LoginForm{
		Username: "user_99",
		Password: actors.DemoPassword,
	})
	s.record(start, err)
	return err
}

func (s *Simulator) record(start time.Time, err error) {
	latency := time.Since(start)
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()
	s.stats.TotalRequests++
	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)
	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}
}

// Report prints the session statistics plus the engine's own latency
// breakdown.
func (s *Simulator) Report() {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	var total time.Duration
	var max time.Duration
	for _, l := range s.stats.RequestLatencies {
		total += l
		if l > max {
			max = l
		}
	}
	var avg time.Duration
	if len(s.stats.RequestLatencies) > 0 {
		avg = total / time.Duration(len(s.stats.RequestLatencies))
	}

	log.Printf("=== Simulation report ===")
	log.Printf("Duration:        %v", time.Since(s.stats.StartTime).Round(time.Millisecond))
	log.Printf("Requests:        %d (%d ok, %d failed)", s.stats.TotalRequests, s.stats.SuccessRequests, s.stats.FailedRequests)
	log.Printf("Latency:         avg %v, max %v", avg, max)
	log.Printf("Browses:         %d", s.stats.TotalBrowses)
	log.Printf("Votes:           %d", s.stats.TotalVotes)
	log.Printf("Comments:        %d", s.stats.TotalComments)
	log.Printf("Posts created:   %d", s.stats.TotalPosts)
	log.Printf("Join toggles:    %d", s.stats.TotalJoins)
	log.Printf("Chat exchanges:  %d", s.stats.TotalChats)
	log.Printf("Login prompts:   %d", s.stats.LoginPrompts)

	opStats, requests, errors := s.client.Stats()
	log.Printf("Engine requests: %d (%d errors)", requests, errors)
	for name, op := range opStats {
		log.Printf("  %-16s count=%d avg=%v max=%v", name, op.Count, op.Average, op.Max)
	}
}
