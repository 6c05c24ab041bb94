package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"time"

	"go.uber.org/zap"

	"warranty-console/internal/entities"
	"warranty-console/internal/events"
	"warranty-console/internal/exports"
	"warranty-console/internal/repositories"
	"warranty-console/internal/views"
	"warranty-console/pkg/config"
	"warranty-console/pkg/eventbus"
	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/listview"
	"warranty-console/pkg/metrics"
	"warranty-console/pkg/utils"
)

// ListPage is one page of a view plus how fresh its records are.
type ListPage[T any] struct {
	listview.Result[T]
	Stale     bool
	Warning   string
	FetchedAt time.Time
}

type ExportRequest struct {
	Query   listview.Query
	Format  exports.Format
	Fields  []string
	Picked  bool
	Variant string
}

type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
	Rows        int
}

type ListServiceInterface[T any] interface {
	View() views.View[T]
	List(ctx context.Context, q listview.Query) (*ListPage[T], error)
	Refresh(ctx context.Context) (*ListPage[T], error)
	Counts(ctx context.Context, name string) (map[string]int, error)
	Export(ctx context.Context, req ExportRequest) (*ExportFile, error)
}

// ListService serves one view from its record store.
type ListService[T any] struct {
	view      views.View[T]
	store     *repositories.RecordStore[T]
	bus       *eventbus.Bus
	maxRows   int
	exportLoc *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewListService[T any](
	view views.View[T],
	store *repositories.RecordStore[T],
	bus *eventbus.Bus,
	exportCfg config.ExportConfig,
	logger *zap.Logger,
) ListServiceInterface[T] {
	return &ListService[T]{
		view:      view,
		store:     store,
		bus:       bus,
		maxRows:   exportCfg.MaxRows,
		exportLoc: config.LoadLocation(exportCfg.Timezone),
		now:       time.Now,
		logger:    logger.Named("list").With(zap.String("view", view.Name)),
	}
}

func (s *ListService[T]) View() views.View[T] {
	return s.view
}

func (s *ListService[T]) load(ctx context.Context, force bool) (repositories.Snapshot[T], error) {
	principal, err := utils.GetPrincipalFromContext(ctx)
	if err != nil {
		return repositories.Snapshot[T]{}, err
	}
	snap, err := s.store.Load(ctx, principal.ID, utils.GetTokenFromContext(ctx), force)
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", s.view.Name, err)
	}
	return snap, nil
}

func (s *ListService[T]) List(ctx context.Context, q listview.Query) (*ListPage[T], error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.page(snap, q), nil
}

// Refresh refetches the store and returns its first page.
func (s *ListService[T]) Refresh(ctx context.Context) (*ListPage[T], error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("store refreshed", zap.Int("records", len(snap.Records)), zap.Bool("stale", snap.Stale))
	return s.page(snap, listview.Query{Page: 1, Limit: listview.DefaultLimit}), nil
}

func (s *ListService[T]) page(snap repositories.Snapshot[T], q listview.Query) *ListPage[T] {
	return &ListPage[T]{
		Result:    listview.Run(snap.Records, s.view.Schema, q),
		Stale:     snap.Stale,
		Warning:   snap.Warning,
		FetchedAt: snap.FetchedAt,
	}
}

// Counts tallies the unfiltered store for one counter group.
func (s *ListService[T]) Counts(ctx context.Context, name string) (map[string]int, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	counts, ok := s.view.CountsFor(snap.Records, name)
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s has no counters for '%s'", s.view.Name, name))
	}
	return counts, nil
}

// Export renders every record matching the query, ignoring pagination.
func (s *ListService[T]) Export(ctx context.Context, req ExportRequest) (*ExportFile, error) {
	principal, err := utils.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}

	q := req.Query
	if req.Variant != "" {
		if s.view.VariantField == "" {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s has no export types", s.view.Name))
		}
		filter := q.Filter
		filter.Equals = maps.Clone(filter.Equals)
		if filter.Equals == nil {
			filter.Equals = make(map[string]string)
		}
		filter.Equals[s.view.VariantField] = req.Variant
		q = q.WithFilter(filter)
	}

	records := listview.Select(snap.Records, s.view.Schema, q)
	if len(records) == 0 {
		return nil, listview.ErrNothingToExport
	}
	if s.maxRows > 0 && len(records) > s.maxRows {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("%d records match, the export limit is %d. Narrow the filters", len(records), s.maxRows),
			apperrors.ErrTooMany, nil)
	}

	fields, stem := s.view.Export(views.ExportOptions{Location: s.exportLoc, Variant: req.Variant})
	if req.Picked {
		if fields, err = fields.Select(req.Fields); err != nil {
			if errors.Is(err, listview.ErrNoFieldsSelected) {
				return nil, err
			}
			return nil, apperrors.NewBadRequestError(err.Error())
		}
	}

	table, err := listview.Project(records, fields)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exports.Write(&buf, req.Format, table, stem); err != nil {
		return nil, fmt.Errorf("write %s export: %w", s.view.Name, err)
	}

	metrics.Export(s.view.Name, string(req.Format), len(records))
	s.logger.Info("export produced",
		zap.String("format", string(req.Format)),
		zap.Int("rows", len(records)),
		zap.String("admin_id", principal.ID),
	)
	s.bus.Publish(ctx, events.ConsoleActionEvent{
		Actor:      *principal,
		Action:     entities.ActionDataExported,
		TargetType: s.view.Name,
		Details: map[string]interface{}{
			"format":  req.Format,
			"rows":    len(records),
			"columns": len(fields),
			"search":  q.Filter.Search,
			"filters": q.Filter.Equals,
		},
	})

	return &ExportFile{
		Name:        listview.ExportFileName(stem, s.now(), s.exportLoc, req.Format.Extension()),
		ContentType: req.Format.ContentType(),
		Body:        buf.Bytes(),
		Rows:        len(records),
	}, nil
}
