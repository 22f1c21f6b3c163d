package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cultofdrive/internal/repository"
	"cultofdrive/internal/service"
)

func socialPostsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "social-posts",
		Short: "Mirror social posts from a JSON file",
		Long: `Mirror social posts from a JSON file into the social_posts table.

The file uses the same format as the feed fallback. Posts are matched on
external_id, so running the import twice refreshes rather than duplicates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, log, err := connect()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			n, err := seedSocialPosts(cmd.Context(), repository.NewSocialPostRepository(gormDB), file)
			if err != nil {
				return err
			}
			log.Info("seed completed", zap.Int64("posts", n))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/social_posts.json", "Path to the social posts JSON file")
	return cmd
}

func seedSocialPosts(ctx context.Context, repo repository.SocialPostRepository, path string) (int64, error) {
	posts, err := service.LoadSocialPostsFile(path)
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		return 0, nil
	}
	n, err := repo.Upsert(ctx, posts)
	if err != nil {
		return 0, fmt.Errorf("upsert social posts: %w", err)
	}
	return n, nil
}
