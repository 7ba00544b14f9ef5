package store

import (
	"time"

	"github.com/google/uuid"

	"broad-forum/internal/models"
)

// Seed content mirrors the launch demo data set. IDs are generated at
// startup; everything else is fixed.

func seedCommunities() []models.Community {
	return []models.Community{
		{ID: uuid.New(), Name: "Energy", Description: "Clean energy, distributed generation and energy management systems.", MemberLabel: "12.5k members", IconURL: "https://picsum.photos/60/60?random=101"},
		{ID: uuid.New(), Name: "Cooling", Description: "HVAC engineering, non-electric air conditioning and efficient climate control.", MemberLabel: "8.2k members", IconURL: "https://picsum.photos/60/60?random=102"},
		{ID: uuid.New(), Name: "OPC", Description: "Industrial connectivity, open platform communication and edge computing.", MemberLabel: "15k members", IconURL: "https://picsum.photos/60/60?random=103"},
		{ID: uuid.New(), Name: "LivingTowers", Description: "Factory-made buildings, stainless core slab structures and future housing.", MemberLabel: "9.8k members", IconURL: "https://picsum.photos/60/60?random=104"},
		{ID: uuid.New(), Name: "CleanAir", Description: "Indoor air quality, fresh air systems and filtration research.", MemberLabel: "11k members", IconURL: "https://picsum.photos/60/60?random=105"},
		{ID: uuid.New(), Name: "HotelOps", Description: "Smart hotel management, guest experience and green operations.", MemberLabel: "5.4k members", IconURL: "https://picsum.photos/60/60?random=106"},
		{ID: uuid.New(), Name: "GroupGeneral", Description: "Company culture, group news and cross-team general discussion.", MemberLabel: "22k members", IconURL: "https://picsum.photos/60/60?random=107"},
		{ID: uuid.New(), Name: "PipeBrain", Description: "IoT control centers, data visualization and building automation.", MemberLabel: "7.6k members", IconURL: "https://picsum.photos/60/60?random=108"},
		{ID: uuid.New(), Name: "BuildGreen", Description: "Sustainable construction, BCORE material applications and field cases.", MemberLabel: "10.2k members", IconURL: "https://picsum.photos/60/60?random=109"},
		{ID: uuid.New(), Name: "Recycling", Description: "Material recovery, circular economy and regeneration technology.", MemberLabel: "6.5k members", IconURL: "https://picsum.photos/60/60?random=110"},
	}
}

func seedHomePosts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID:            uuid.New(),
			CommunityName: "Energy",
			CommunityIcon: "https://picsum.photos/40/40?random=101",
			Author:        "EcoWarrior",
			TimeAgo:       "4 hours ago",
			CreatedAt:     now.Add(-4 * time.Hour),
			Title:         "Prospects for distributed rooftop solar on urban buildings",
			ImageURL:      "https://picsum.photos/800/400?random=2",
			Upvotes:       14500,
			CommentCount:  890,
			Content:       "As cities densify, squeezing the most solar yield out of limited building surfaces has become a hot topic. This post walks through the latest flexible photovoltaic efficiency figures and the cost-benefit of integrating panels with conventional glass curtain walls.",
		},
		{
			ID:            uuid.New(),
			CommunityName: "LivingTowers",
			CommunityIcon: "https://picsum.photos/40/40?random=104",
			Author:        "BuildTech_01",
			TimeAgo:       "9 hours ago",
			CreatedAt:     now.Add(-9 * time.Hour),
			Title:         "Seismic test report for stainless core slab structures",
			Content:       "We recently ran magnitude-9 earthquake simulations against the new tower modules. The results were surprising: structural integrity stayed above 98%. Full data attached. Compared with conventional concrete, the toughness of this material raises the safety margin considerably.",
			Upvotes:       5597,
			CommentCount:  2734,
		},
		{
			ID:            uuid.New(),
			CommunityName: "OPC",
			CommunityIcon: "https://picsum.photos/40/40?random=103",
			Author:        "DevOps_Master",
			TimeAgo:       "1 hour ago",
			CreatedAt:     now.Add(-1 * time.Hour),
			Title:         "New gateway adapter released for the OPC UA protocol",
			Content:       "Fixed the packet loss issue on reconnect and improved multi-threaded acquisition throughput. Community testing and feedback welcome. We especially strengthened the edge-side cache so data survives network jitter with zero loss.",
			Upvotes:       450,
			CommentCount:  89,
		},
	}
}

func seedPopularPosts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID:            uuid.New(),
			CommunityName: "CleanAir",
			CommunityIcon: "https://picsum.photos/40/40?random=105",
			Author:        "FreshAir_Fan",
			TimeAgo:       "2 hours ago",
			CreatedAt:     now.Add(-2 * time.Hour),
			Title:         "Electrostatic precipitators vs HEPA filters: a long-term cost analysis",
			ImageURL:      "https://picsum.photos/800/500?random=21",
			Upvotes:       45200,
			CommentCount:  1200,
			Content:       "Electrostatic dedusting costs more up front, but having no consumables gives it a clear edge in five-year total cost of ownership.",
		},
		{
			ID:            uuid.New(),
			CommunityName: "PipeBrain",
			CommunityIcon: "https://picsum.photos/40/40?random=108",
			Author:        "IoT_Engineer",
			TimeAgo:       "3 hours ago",
			CreatedAt:     now.Add(-3 * time.Hour),
			Title:         "Large-scale sensor networking with LoRaWAN in practice",
			ImageURL:      "https://picsum.photos/800/400?random=5",
			Upvotes:       8200,
			CommentCount:  1200,
			Content:       "In a messy industrial environment, wireless penetration is everything. We share what we learned deploying the PipeBrain system across a 500,000 square meter plant, from gateway placement planning to interference hunting.",
		},
	}
}

func seedComments(postID uuid.UUID) []models.Comment {
	return []models.Comment{
		{
			ID:      uuid.New(),
			PostID:  postID,
			Author:  "SolarExpert_99",
			Content: "The data analysis here is really solid, especially on flexible material conversion efficiency. I expect building-integrated photovoltaics to go mainstream within five years.",
			Upvotes: 156,
			TimeAgo: "3 hours ago",
		},
		{
			ID:      uuid.New(),
			PostID:  postID,
			Author:  "GreenBuilder",
			Content: "As an architect my main worry is maintenance cost. Cleaning high-rise facades and swapping modules is still a hard problem. Is the self-cleaning coating mentioned in the post actually mature?",
			Upvotes: 89,
			TimeAgo: "2 hours ago",
		},
		{
			ID:      uuid.New(),
			PostID:  postID,
			Author:  "TechObserver",
			Content: "Agreed with OP. Storage is the other half of the story though. Generation without storage hits the grid too hard.",
			Upvotes: 45,
			TimeAgo: "1 hour ago",
		},
	}
}

func seedApps(now time.Time) []models.OpcApp {
	return []models.OpcApp{
		{ID: uuid.New(), Name: "Edge Server X1", Type: models.AppTypeOfficial, URL: "https://opc.example.com/edge-server-x1", Description: "Low-power server blueprint built for edge computing, with 5G module support.", Author: "Broad Labs", Stars: 230, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: uuid.New(), Name: "LlamaTune", Type: models.AppTypeOfficial, URL: "https://opc.example.com/llamatune", Description: "Domain-tuned model weights on the Llama architecture, optimized for financial data.", Author: "Broad Labs", Stars: 1205, CreatedAt: now.Add(-60 * time.Hour)},
		{ID: uuid.New(), Name: "Liquid Cooling Mod", Type: models.AppTypeOfficial, URL: "https://opc.example.com/liquid-cooling", Description: "High-efficiency data center liquid cooling retrofit kit, pushing PUE down to 1.05.", Author: "Broad Labs", Stars: 89, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: uuid.New(), Name: "Broad OS Kernel", Type: models.AppTypeOfficial, URL: "https://opc.example.com/broad-os", Description: "Lightweight operating system kernel tuned for Broad hardware with hardened realtime behavior.", Author: "Broad Labs", Stars: 567, CreatedAt: now.Add(-36 * time.Hour)},
		{ID: uuid.New(), Name: "Vision API SDK", Type: models.AppTypeOfficial, URL: "https://opc.example.com/vision-sdk", Description: "Python bindings for the general-purpose vision recognition interface.", Author: "Broad Labs", Stars: 330, CreatedAt: now.Add(-24 * time.Hour)},
	}
}

func seedProfile() models.Profile {
	return models.Profile{
		DisplayName: "User_99",
		Avatar:      "https://picsum.photos/100/100",
		Bio:         "Exploring the future of tech and sustainable living.",
		Email:       "user99@example.com",
	}
}
