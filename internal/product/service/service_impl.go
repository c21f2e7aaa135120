package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/productify/productify/internal/clock"
	commentdomain "github.com/productify/productify/internal/comment/domain"
	"github.com/productify/productify/internal/product/domain"
	userdomain "github.com/productify/productify/internal/user/domain"
	pkgdb "github.com/productify/productify/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	GenID    *snowflake.Node
	Repo     domain.Repository
	Users    userdomain.Service
	Comments commentdomain.Aggregator
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	genID    *snowflake.Node
	repo     domain.Repository
	users    userdomain.Service
	comments commentdomain.Aggregator
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("product.service"),
		clock:    p.Clock,
		genID:    p.GenID,
		repo:     p.Repo,
		users:    p.Users,
		comments: p.Comments,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items, true), nil
}

func (s *Service) ListMine(ctx context.Context, callerID string) ([]domain.Response, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	items, err := s.repo.FindByOwner(ctx, s.db, callerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items, false), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(ctx, item, true)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, callerID string, req domain.CreateRequest) (*domain.Response, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	imageURL := strings.TrimSpace(req.ImageURL)

	var fields []domain.FieldError
	if title == "" {
		fields = append(fields, domain.RequiredField("title"))
	}
	if description == "" {
		fields = append(fields, domain.RequiredField("description"))
	}
	if imageURL == "" {
		fields = append(fields, domain.RequiredField("imageUrl"))
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	now := s.clock.Now().UTC()
	p := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		OwnerID:     callerID,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, p); err != nil {
		if !pkgdb.IsDuplicateKeyErr(err) {
			return nil, err
		}
		// Snowflake collisions only happen across restarts with a reused
		// node ID; one fresh ID is enough.
		p.ID = s.genID.Generate().Int64()
		if err := s.repo.Insert(ctx, s.db, p); err != nil {
			return nil, err
		}
	}

	resp := s.toResponse(ctx, p, true)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, callerID string, id string, req domain.UpdateRequest) (*domain.Response, error) {
	item, err := s.loadOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	var fields []domain.FieldError
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			fields = append(fields, domain.RequiredField("title"))
		} else {
			item.Title = title
		}
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			fields = append(fields, domain.RequiredField("description"))
		} else {
			item.Description = description
		}
	}
	if req.ImageURL != nil {
		imageURL := strings.TrimSpace(*req.ImageURL)
		if imageURL == "" {
			fields = append(fields, domain.RequiredField("imageUrl"))
		} else {
			item.ImageURL = imageURL
		}
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	item.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, item, true)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, callerID string, id string) error {
	item, err := s.loadOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	// Image file and comments are left behind on purpose; cleanup belongs
	// to an external housekeeping process.
	rows, err := s.repo.Delete(ctx, s.db, item.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadOwned performs the fixed load -> authorize sequence shared by Update
// and Delete: existence is confirmed first, then ownership, and only then
// may the caller mutate.
func (s *Service) loadOwned(ctx context.Context, callerID string, id string) (*domain.Product, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (s *Service) toResponses(ctx context.Context, items []domain.Product, enrich bool) []domain.Response {
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, s.toResponse(ctx, &items[i], enrich))
	}
	return resp
}

// toResponse merges owner and comment data into the authoritative record.
// Enrichment is best-effort: a failing lookup degrades the response instead
// of failing the read.
func (s *Service) toResponse(ctx context.Context, p *domain.Product, enrich bool) domain.Response {
	resp := domain.Response{
		ID:          snowflake.ID(p.ID).String(),
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Comments:    []commentdomain.Comment{},
	}

	if !enrich {
		return resp
	}

	owner, err := s.users.GetProfile(ctx, p.OwnerID)
	if err != nil {
		s.log.Warn("owner enrichment failed",
			zap.String("product_id", resp.ID),
			zap.Error(err),
		)
	} else {
		resp.User = owner
	}

	summary, err := s.comments.Summarize(ctx, p.ID)
	if err != nil {
		s.log.Warn("comment enrichment failed",
			zap.String("product_id", resp.ID),
			zap.Error(err),
		)
		return resp
	}
	resp.Comments = summary.Preview
	resp.CommentCount = summary.Count

	return resp
}

func parseID(id string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}
