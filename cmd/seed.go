package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"folio/api/database"
	"folio/api/models"
	"folio/api/store"
	"folio/api/utils"
)

var seedFilePath string

// seedFile is the YAML fixture loaded by the seed command.
type seedFile struct {
	Projects     []models.ProjectRequest     `yaml:"projects"`
	Testimonials []models.TestimonialRequest `yaml:"testimonials"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load projects and testimonials from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFilePath)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()

		seed, err := loadSeed(f)
		if err != nil {
			return err
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		db, err := database.NewSQLDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		return applySeed(ctx, seed, store.NewProjectStore(db, log), store.NewTestimonialStore(db, log), log)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFilePath, "file", "f", "seed.yaml", "YAML file with projects and testimonials")
	rootCmd.AddCommand(seedCmd)
}

// loadSeed decodes and validates a fixture. Slugs are derived from names when
// absent, the same way the dashboard endpoints derive them.
func loadSeed(r io.Reader) (*seedFile, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	for i := range seed.Projects {
		p := &seed.Projects[i]
		if err := binding.Validator.ValidateStruct(p); err != nil {
			return nil, fmt.Errorf("project %d (%q): %w", i, p.Name, err)
		}
		p.Slug = slugOrName(p.Slug, p.Name)
	}
	for i := range seed.Testimonials {
		t := &seed.Testimonials[i]
		if err := binding.Validator.ValidateStruct(t); err != nil {
			return nil, fmt.Errorf("testimonial %d (%q): %w", i, t.Name, err)
		}
		t.Slug = slugOrName(t.Slug, t.Name)
	}
	return &seed, nil
}

func slugOrName(slug, name string) string {
	if slug == "" {
		return utils.Slugify(name)
	}
	return utils.Slugify(slug)
}

type seedProjectStore interface {
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
}

type seedTestimonialStore interface {
	CreateTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error)
}

// applySeed inserts every fixture row. Rows whose slug already exists are
// skipped so the command can be re-run.
func applySeed(ctx context.Context, seed *seedFile, projects seedProjectStore, testimonials seedTestimonialStore, log *zap.Logger) error {
	var created, skipped int

	for _, req := range seed.Projects {
		_, err := projects.CreateProject(ctx, req.ToProject())
		switch {
		case errors.Is(err, store.ErrConflict):
			skipped++
			log.Info("project already exists, skipping", zap.String("slug", req.Slug))
		case err != nil:
			return fmt.Errorf("seed project %s: %w", req.Slug, err)
		default:
			created++
		}
	}

	for _, req := range seed.Testimonials {
		_, err := testimonials.CreateTestimonial(ctx, req.ToTestimonial())
		switch {
		case errors.Is(err, store.ErrConflict):
			skipped++
			log.Info("testimonial already exists, skipping", zap.String("slug", req.Slug))
		case err != nil:
			return fmt.Errorf("seed testimonial %s: %w", req.Slug, err)
		default:
			created++
		}
	}

	log.Info("seed complete", zap.Int("created", created), zap.Int("skipped", skipped))
	return nil
}
