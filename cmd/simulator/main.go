package main

import (
	"context"
	"flag"
	"log"
	"time"

	"broad-forum/internal/ai"
	"broad-forum/internal/app"
	"broad-forum/internal/config"
	"broad-forum/simulator"
)

func main() {
	duration := flag.Duration("duration", 30*time.Second, "how long to run the simulation")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The simulator never talks to the real API; a canned assistant
	// keeps the chat path exercised without network calls.
	assistant := &ai.Canned{
		Reply:   "Here is a short answer from the simulated assistant.",
		Comment: "Interesting data, thanks for sharing.",
	}

	client := app.NewClient(cfg, assistant)
	defer client.Shutdown()

	simConfig := simulator.DefaultConfig()
	simConfig.SimulationTime = *duration

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Simulation time: %v", simConfig.SimulationTime)
	log.Printf("- Tick interval: %v", simConfig.TickInterval)
	log.Printf("- Browse frequency: %.2f", simConfig.BrowseFrequency)
	log.Printf("- Vote frequency: %.2f", simConfig.VoteFrequency)
	log.Printf("- Comment frequency: %.2f", simConfig.CommentFrequency)
	log.Printf("- Post frequency: %.2f", simConfig.PostFrequency)
	log.Printf("- Join frequency: %.2f", simConfig.JoinFrequency)
	log.Printf("- Chat frequency: %.2f", simConfig.ChatFrequency)

	sim := simulator.NewSimulator(simConfig, client)
	if err := sim.Run(context.Background()); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	sim.Report()
}
