package seed

import (
	"context"
	"fmt"

	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/resource"
)

// Importer loads a seed file and inserts its entries through the resource
// clients, so seeded records get the same defaults and validation as records
// created over the API.
type Importer struct {
	loader *Loader
	mapper *Mapper
	log    logger.Logger
}

// NewImporter creates an importer for the given seed file path.
func NewImporter(filePath string, log logger.Logger) *Importer {
	return &Importer{
		loader: NewLoader(filePath),
		mapper: NewMapper(),
		log:    log,
	}
}

// Run seeds each resource whose collection is still empty. Non-empty
// collections are left alone so restarts never duplicate data.
func (i *Importer) Run(ctx context.Context, timeline, career, posts *resource.Client) error {
	f, err := i.loader.Load()
	if err != nil {
		return err
	}

	sections := []struct {
		client  *resource.Client
		records []domain.Record
	}{
		{timeline, i.mapper.MapTimeline(f.Timeline)},
		{career, i.mapper.MapCareer(f.Career)},
		{posts, i.mapper.MapPosts(f.Posts)},
	}

	for _, s := range sections {
		if err := i.seed(ctx, s.client, s.records); err != nil {
			return err
		}
	}
	return nil
}

func (i *Importer) seed(ctx context.Context, client *resource.Client, records []domain.Record) error {
	name := client.Definition().Name
	if len(records) == 0 {
		return nil
	}

	existing, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	if len(existing) > 0 {
		i.log.Info("seed skipped, collection not empty",
			logger.String("resource", name),
			logger.Int("existing", len(existing)),
		)
		return nil
	}

	for _, rec := range records {
		if _, err := client.Create(ctx, rec); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	i.log.Info("seeded collection",
		logger.String("resource", name),
		logger.Int("records", len(records)),
	)
	return nil
}
