package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Demonism0/inventory-application/internal/entity"
	mock_repository "github.com/Demonism0/inventory-application/internal/repository/mock"
	"github.com/Demonism0/inventory-application/internal/service"
	mock_logger "github.com/Demonism0/inventory-application/pkg/logger/mock"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
)

func TestCategoryService_ListWithCounts(t *testing.T) {
	t.Run("CountsGroupedPerCategory", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
		itemRepo := mock_repository.NewMockItemRepository(ctrl)
		log := mock_logger.NewMockLogger(ctrl)

		tools := &entity.Category{ID: uuid.New(), Name: "Tools"}
		garden := &entity.Category{ID: uuid.New(), Name: "Garden"}
		empty := &entity.Category{ID: uuid.New(), Name: "Seasonal"}

		items := []*entity.Item{
			{ID: uuid.New(), Name: "Hammer", CategoryIDs: []uuid.UUID{tools.ID}},
			{ID: uuid.New(), Name: "Shears", CategoryIDs: []uuid.UUID{tools.ID, garden.ID}},
			{ID: uuid.New(), Name: "Hose", CategoryIDs: []uuid.UUID{garden.ID}},
		}

		categoryRepo.EXPECT().GetAll(gomock.Any()).
			Return([]*entity.Category{tools, garden, empty}, nil).Times(1)
		itemRepo.EXPECT().GetAll(gomock.Any()).
			Return(items, nil).Times(1)

		s := service.NewCategoryService(categoryRepo, itemRepo, log)

		counts, gotItems, err := s.ListWithCounts(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(gotItems) != len(items) {
			t.Fatalf("expected %d items, got %d", len(items), len(gotItems))
		}
		if len(counts) != 3 {
			t.Fatalf("expected 3 category counts, got %d", len(counts))
		}

		countByName := make(map[string]int, len(counts))
		for _, count := range counts {
			countByName[count.Category.Name] = count.ItemCount
		}
		if countByName["Tools"] != 2 {
			t.Errorf("expected Tools count 2, got %d", countByName["Tools"])
		}
		if countByName["Garden"] != 2 {
			t.Errorf("expected Garden count 2, got %d", countByName["Garden"])
		}
		if countByName["Seasonal"] != 0 {
			t.Errorf("expected Seasonal count 0, got %d", countByName["Seasonal"])
		}
	})

	t.Run("RepositoryError", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
		itemRepo := mock_repository.NewMockItemRepository(ctrl)
		log := mock_logger.NewMockLogger(ctrl)

		categoryRepo.EXPECT().GetAll(gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)
		itemRepo.EXPECT().GetAll(gomock.Any()).
			Return([]*entity.Item{}, nil).MaxTimes(1)

		s := service.NewCategoryService(categoryRepo, itemRepo, log)

		if _, _, err := s.ListWithCounts(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestCategoryService_Get(t *testing.T) {
	testCases := []struct {
		desc  string
		mocks func(
			categoryRepo *mock_repository.MockCategoryRepository,
			itemRepo *mock_repository.MockItemRepository,
			category *entity.Category,
		)
		expectedErr error
	}{
		{
			desc: "Success",
			mocks: func(
				categoryRepo *mock_repository.MockCategoryRepository,
				itemRepo *mock_repository.MockItemRepository,
				category *entity.Category,
			) {
				categoryRepo.EXPECT().GetByID(gomock.Any(), category.ID).
					Return(category, nil).Times(1)

				itemRepo.EXPECT().GetByCategoryID(gomock.Any(), category.ID).
					Return([]*entity.Item{generateFakeItem()}, nil).Times(1)
			},
			expectedErr: nil,
		},
		{
			desc: "CategoryNotFound",
			mocks: func(
				categoryRepo *mock_repository.MockCategoryRepository,
				itemRepo *mock_repository.MockItemRepository,
				category *entity.Category,
			) {
				categoryRepo.EXPECT().GetByID(gomock.Any(), category.ID).
					Return(nil, entity.ErrDataNotFound).Times(1)

				itemRepo.EXPECT().GetByCategoryID(gomock.Any(), category.ID).
					Return([]*entity.Item{}, nil).MaxTimes(1)
			},
			expectedErr: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			category := generateFakeCategory()

			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)

			tc.mocks(categoryRepo, itemRepo, category)

			s := service.NewCategoryService(categoryRepo, itemRepo, log)

			gotCategory, gotItems, err := s.Get(context.Background(), category.ID)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotCategory == nil {
				t.Fatal("expected non-nil category on success")
			}
			if len(gotItems) == 0 {
				t.Fatal("expected referencing items on success")
			}
		})
	}
}

func TestCategoryService_CreateOrGet(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc        string
		created     bool
		logMessage  string
		repoErr     error
		expectedErr bool
	}{
		{
			desc:       "CreatedNew",
			created:    true,
			logMessage: "category created",
		},
		{
			desc:       "MergedIntoExisting",
			created:    false,
			logMessage: "category merged into existing",
		},
		{
			desc:        "RepositoryError",
			repoErr:     errors.New("database error"),
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			name := gofakeit.ProductCategory()
			id := uuid.New()

			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			if tc.repoErr != nil {
				categoryRepo.EXPECT().CreateOrGet(ctx, name).
					Return(uuid.Nil, false, tc.repoErr).Times(1)
			} else {
				categoryRepo.EXPECT().CreateOrGet(ctx, name).
					Return(id, tc.created, nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), tc.logMessage, gomock.Any()).
					Times(1)
			}

			s := service.NewCategoryService(categoryRepo, itemRepo, log)

			gotID, gotCreated, err := s.CreateOrGet(ctx, name)

			if tc.expectedErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotID != id {
				t.Fatalf("expected id %s, got %s", id, gotID)
			}
			if gotCreated != tc.created {
				t.Fatalf("expected created=%v, got %v", tc.created, gotCreated)
			}
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc        string
		repoErr     error
		expectedErr error
	}{
		{
			desc: "Success",
		},
		{
			desc:        "NameConflict",
			repoErr:     entity.ErrConflictingData,
			expectedErr: entity.ErrConflictingData,
		},
		{
			desc:        "CategoryNotFound",
			repoErr:     entity.ErrDataNotFound,
			expectedErr: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			category := generateFakeCategory()

			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			categoryRepo.EXPECT().Update(ctx, gomock.Eq(category)).
				Return(tc.repoErr).Times(1)

			if tc.repoErr == nil {
				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "category updated", gomock.Any()).
					Times(1)
			}

			s := service.NewCategoryService(categoryRepo, itemRepo, log)

			err := s.Update(ctx, category)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc  string
		mocks func(
			categoryRepo *mock_repository.MockCategoryRepository,
			itemRepo *mock_repository.MockItemRepository,
			log *mock_logger.MockLogger,
			id uuid.UUID,
		)
		expectedErr error
	}{
		{
			desc: "Success",
			mocks: func(
				categoryRepo *mock_repository.MockCategoryRepository,
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				id uuid.UUID,
			) {
				itemRepo.EXPECT().GetByCategoryID(ctx, id).
					Return([]*entity.Item{}, nil).Times(1)

				categoryRepo.EXPECT().Delete(ctx, id).Return(nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "category deleted", gomock.Any()).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			// Items still reference the category: the delete is refused and
			// the category row is left untouched.
			desc: "BlockedByReferencingItems",
			mocks: func(
				categoryRepo *mock_repository.MockCategoryRepository,
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				id uuid.UUID,
			) {
				itemRepo.EXPECT().GetByCategoryID(ctx, id).
					Return([]*entity.Item{generateFakeItem()}, nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "category delete blocked", gomock.Any()).
					Times(1)
			},
			expectedErr: entity.ErrCategoryInUse,
		},
		{
			desc: "ReferenceCheckError",
			mocks: func(
				categoryRepo *mock_repository.MockCategoryRepository,
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				id uuid.UUID,
			) {
				itemRepo.EXPECT().GetByCategoryID(ctx, id).
					Return(nil, errors.New("database error")).Times(1)
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()

			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			tc.mocks(categoryRepo, itemRepo, log, id)

			s := service.NewCategoryService(categoryRepo, itemRepo, log)

			err := s.Delete(ctx, id)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tc.expectedErr)
				}
				if errors.Is(tc.expectedErr, entity.ErrCategoryInUse) &&
					!errors.Is(err, entity.ErrCategoryInUse) {
					t.Fatalf("expected error to contain %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
