package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"gator-feed/internal/client"
	"gator-feed/internal/config"
	"gator-feed/internal/coordinator"
	"gator-feed/internal/engine"
	"gator-feed/internal/models"
	"gator-feed/internal/utils"
)

// feedsim drives randomized optimistic activity (votes, comments, posts,
// deletes) through the full client stack against a live server, then
// reports the metrics the coordinator collected. It doubles as an
// end-to-end exercise of the reconciliation protocol: every action goes
// start -> remote -> commit/fail through the store actor.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	feedEngine := engine.NewEngine(system, metrics)

	api := client.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.RetryMax)
	coord := coordinator.NewCoordinator(feedEngine, api, metrics, cfg.Username, cfg.UserID)

	log.Printf("Starting feed simulation with configuration:")
	log.Printf("- Engine URL: %s", cfg.API.BaseURL)
	log.Printf("- Duration: %v", cfg.Sim.Duration)
	log.Printf("- Vote frequency: %.2f actions/sec", cfg.Sim.VoteFrequency)
	log.Printf("- Post frequency: %.2f actions/sec", cfg.Sim.PostFrequency)
	log.Printf("- Feed sort: %s %s", cfg.Feed.Sort, cfg.Feed.Order)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sim.Duration)
	defer cancel()

	opts := client.FeedOptions{Sort: client.SortKey(cfg.Feed.Sort), Order: cfg.Feed.Order}
	if err := coord.LoadFeed(ctx, opts); err != nil {
		log.Fatalf("Initial feed load failed: %v", err)
	}

	snapshot, err := feedEngine.Snapshot()
	if err != nil {
		log.Fatalf("Failed to read store after feed load: %v", err)
	}
	log.Printf("Feed loaded: %d posts", len(snapshot.Posts))

	runActivities(ctx, coord, feedEngine, cfg)

	reportMetrics(metrics)
}

func runActivities(ctx context.Context, coord *coordinator.Coordinator, feedEngine *engine.Engine, cfg *config.Config) {
	voteTicker := time.NewTicker(frequencyInterval(cfg.Sim.VoteFrequency))
	defer voteTicker.Stop()
	postTicker := time.NewTicker(frequencyInterval(cfg.Sim.PostFrequency))
	defer postTicker.Stop()
	reportTicker := time.NewTicker(10 * time.Second)
	defer reportTicker.Stop()

	directions := []models.VoteDirection{models.VoteUp, models.VoteDown}

	for {
		select {
		case <-ctx.Done():
			return

		case <-voteTicker.C:
			post := randomConfirmedPost(feedEngine)
			if post == nil {
				continue
			}
			dir := directions[rand.Intn(len(directions))]

			if len(post.Comments) > 0 && rand.Float64() < 0.3 {
				comment := randomConfirmedComment(post)
				if comment == nil {
					continue
				}
				if err := coord.VoteComment(ctx, post.TempID, comment.TempID, dir); err != nil {
					log.Printf("Comment vote skipped: %v", err)
				}
				continue
			}

			if rand.Float64() < 0.5 {
				if err := coord.VotePost(ctx, post.TempID, dir); err != nil {
					log.Printf("Post vote skipped: %v", err)
				}
			} else {
				coord.StartComment(post.TempID)
				text := fmt.Sprintf("Comment from %s at %s", cfg.Username, time.Now().Format(time.RFC3339))
				coord.UpdateCommentDraft(post.TempID, text)
				if err := coord.AddComment(ctx, post.TempID, text); err != nil {
					log.Printf("Comment add skipped: %v", err)
				}
			}

		case <-postTicker.C:
			// Occasionally tear down one of our own posts instead of
			// creating another, to exercise the delete protocol.
			if own := randomOwnPost(feedEngine, cfg.Username); own != nil && rand.Float64() < 0.2 {
				coord.OpenDeleteModal()
				if err := coord.DeletePost(ctx, own.TempID); err != nil {
					log.Printf("Post delete skipped: %v", err)
					coord.CloseDeleteModal()
				}
				continue
			}

			coord.OpenAddPostModal()
			title := fmt.Sprintf("Post by %s at %d", cfg.Username, time.Now().Unix())
			content := fmt.Sprintf("Content from %s: %s", cfg.Username, time.Now().Format(time.RFC3339))
			coord.UpdatePostForm("title", title)
			coord.UpdatePostForm("content", content)
			if err := coord.AddPost(ctx, title, content); err != nil {
				log.Printf("Post add skipped: %v", err)
			}

		case <-reportTicker.C:
			logProgress(feedEngine)
		}
	}
}

func randomConfirmedPost(feedEngine *engine.Engine) *models.Post {
	snapshot, err := feedEngine.Snapshot()
	if err != nil {
		log.Printf("Snapshot failed: %v", err)
		return nil
	}
	posts := snapshot.SortedPosts()
	confirmed := posts[:0]
	for _, p := range posts {
		if p.Confirmed() && !p.UI.IsPending {
			confirmed = append(confirmed, p)
		}
	}
	if len(confirmed) == 0 {
		return nil
	}
	return confirmed[rand.Intn(len(confirmed))]
}

func randomOwnPost(feedEngine *engine.Engine, author string) *models.Post {
	snapshot, err := feedEngine.Snapshot()
	if err != nil {
		return nil
	}
	var own []*models.Post
	for _, p := range snapshot.Posts {
		if p.Author == author && p.Confirmed() && !p.UI.IsPending {
			own = append(own, p)
		}
	}
	if len(own) == 0 {
		return nil
	}
	return own[rand.Intn(len(own))]
}

func randomConfirmedComment(post *models.Post) *models.Comment {
	var confirmed []*models.Comment
	for _, c := range post.Comments {
		if c.Confirmed() && !c.UI.IsPending {
			confirmed = append(confirmed, c)
		}
	}
	if len(confirmed) == 0 {
		return nil
	}
	return confirmed[rand.Intn(len(confirmed))]
}

func logProgress(feedEngine *engine.Engine) {
	snapshot, err := feedEngine.Snapshot()
	if err != nil {
		log.Printf("Snapshot failed: %v", err)
		return
	}

	pending, voting := 0, 0
	comments := 0
	for _, p := range snapshot.Posts {
		if p.UI.IsPending {
			pending++
		}
		if p.UI.IsVoting {
			voting++
		}
		comments += len(p.Comments)
	}
	log.Printf("Store: %d posts (%d pending, %d voting), %d comments",
		len(snapshot.Posts), pending, voting, comments)
}

func reportMetrics(metrics *utils.MetricsCollector) {
	requests, errors := metrics.Counts()
	log.Printf("\nSimulation completed after %v:", metrics.Uptime().Round(time.Second))
	log.Printf("- Total requests: %d", requests)
	log.Printf("- Failed requests: %d", errors)
	for _, op := range []string{"load_feed", "vote_post", "vote_comment", "create_comment", "create_post", "delete_post", "delete_comment"} {
		stats := metrics.GetOperationStats(op)
		if stats.Count == 0 {
			continue
		}
		log.Printf("- %s: %d calls, avg %v, max %v", op, stats.Count, stats.Average, stats.Max)
	}
}

// frequencyInterval converts actions-per-second into a ticker interval,
// clamped so a zero frequency does not panic the ticker.
func frequencyInterval(perSecond float64) time.Duration {
	if perSecond <= 0 {
		return time.Hour
	}
	return time.Duration(float64(time.Second) / perSecond)
}
