package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Demonism0/inventory-application/internal/entity"
	mock_repository "github.com/Demonism0/inventory-application/internal/repository/mock"
	"github.com/Demonism0/inventory-application/internal/service"
	mock_logger "github.com/Demonism0/inventory-application/pkg/logger/mock"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
)

func generateFakeItem() *entity.Item {
	return &entity.Item{
		ID:          uuid.New(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(8),
		Price:       fmt.Sprintf("$%.2f", gofakeit.Price(1, 500)),
		Stock:       gofakeit.Number(0, 100),
		CategoryIDs: []uuid.UUID{uuid.New(), uuid.New()},
	}
}

func generateFakeCategory() *entity.Category {
	return &entity.Category{
		ID:   uuid.New(),
		Name: gofakeit.ProductCategory(),
	}
}

func TestItemService_Get(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc  string
		setup func() *entity.Item
		mocks func(
			itemRepo *mock_repository.MockItemRepository,
			categoryRepo *mock_repository.MockCategoryRepository,
			item *entity.Item,
		)
		expectedErr error
	}{
		{
			desc:  "Success",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				categoryRepo *mock_repository.MockCategoryRepository,
				item *entity.Item,
			) {
				itemRepo.EXPECT().GetByID(ctx, item.ID).
					Return(item, nil).Times(1)

				categoryRepo.EXPECT().GetByIDs(ctx, item.CategoryIDs).
					Return([]*entity.Category{generateFakeCategory()}, nil).Times(1)
			},
			expectedErr: nil,
		},
		{
			desc:  "ItemNotFound",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				categoryRepo *mock_repository.MockCategoryRepository,
				item *entity.Item,
			) {
				itemRepo.EXPECT().GetByID(ctx, item.ID).
					Return(nil, entity.ErrDataNotFound).Times(1)
			},
			expectedErr: entity.ErrDataNotFound,
		},
		{
			desc:  "CategoryResolveError",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				categoryRepo *mock_repository.MockCategoryRepository,
				item *entity.Item,
			) {
				itemRepo.EXPECT().GetByID(ctx, item.ID).
					Return(item, nil).Times(1)

				categoryRepo.EXPECT().GetByIDs(ctx, item.CategoryIDs).
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

			item := tc.setup()

			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			tc.mocks(itemRepo, categoryRepo, item)

			s := service.NewItemService(itemRepo, categoryRepo, log)

			gotItem, gotCategories, err := s.Get(ctx, item.ID)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tc.expectedErr)
				}
				if errors.Is(tc.expectedErr, entity.ErrDataNotFound) &&
					!errors.Is(err, entity.ErrDataNotFound) {
					t.Fatalf("expected error to contain %v, got %v", tc.expectedErr, err)
				}
				if gotItem != nil {
					t.Error("expected nil item on error, got non-nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotItem == nil {
				t.Fatal("expected non-nil item on success")
			}
			if gotItem.ID != item.ID {
				t.Fatalf("expected item %s, got %s", item.ID, gotItem.ID)
			}
			if len(gotCategories) == 0 {
				t.Fatal("expected resolved categories on success")
			}
		})
	}
}

func TestItemService_GetForUpdate(t *testing.T) {
	testCases := []struct {
		desc  string
		setup func() *entity.Item
		mocks func(
			itemRepo *mock_repository.MockItemRepository,
			categoryRepo *mock_repository.MockCategoryRepository,
			item *entity.Item,
		)
		expectedErr error
	}{
		{
			desc:  "Success",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				categoryRepo *mock_repository.MockCategoryRepository,
				item *entity.Item,
			) {
				itemRepo.EXPECT().GetByID(gomock.Any(), item.ID).
					Return(item, nil).Times(1)

				categoryRepo.EXPECT().GetAll(gomock.Any()).
					Return([]*entity.Category{generateFakeCategory()}, nil).Times(1)
			},
			expectedErr: nil,
		},
		{
			desc:  "ItemNotFound",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				categoryRepo *mock_repository.MockCategoryRepository,
				item *entity.Item,
			) {
				itemRepo.EXPECT().GetByID(gomock.Any(), item.ID).
					Return(nil, entity.ErrDataNotFound).Times(1)

				categoryRepo.EXPECT().GetAll(gomock.Any()).
					Return([]*entity.Category{}, nil).MaxTimes(1)
			},
			expectedErr: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			item := tc.setup()

			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			tc.mocks(itemRepo, categoryRepo, item)

			s := service.NewItemService(itemRepo, categoryRepo, log)

			gotItem, gotCategories, err := s.GetForUpdate(context.Background(), item.ID)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotItem == nil || len(gotCategories) == 0 {
				t.Fatal("expected item and categories on success")
			}
		})
	}
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc  string
		setup func() *entity.Item
		mocks func(
			itemRepo *mock_repository.MockItemRepository,
			log *mock_logger.MockLogger,
			item *entity.Item,
		)
		expectedErr error
	}{
		{
			desc:  "Success",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				item *entity.Item,
			) {
				itemRepo.EXPECT().Create(ctx, gomock.Eq(item)).
					Return(item.ID, nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "item created", gomock.Any()).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			desc:  "RepositoryError",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				item *entity.Item,
			) {
				itemRepo.EXPECT().Create(ctx, gomock.Eq(item)).
					Return(uuid.Nil, errors.New("database error")).Times(1)
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			item := tc.setup()

			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			tc.mocks(itemRepo, log, item)

			s := service.NewItemService(itemRepo, categoryRepo, log)

			id, err := s.Create(ctx, item)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tc.expectedErr)
				}
				if id != uuid.Nil {
					t.Error("expected nil id on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if id != item.ID {
				t.Fatalf("expected id %s, got %s", item.ID, id)
			}
		})
	}
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc  string
		setup func() *entity.Item
		mocks func(
			itemRepo *mock_repository.MockItemRepository,
			log *mock_logger.MockLogger,
			item *entity.Item,
		)
		expectedErr error
	}{
		{
			desc:  "Success",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				item *entity.Item,
			) {
				itemRepo.EXPECT().Update(ctx, gomock.Eq(item)).
					Return(nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "item updated", gomock.Any()).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			desc:  "ItemNotFound",
			setup: generateFakeItem,
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				item *entity.Item,
			) {
				itemRepo.EXPECT().Update(ctx, gomock.Eq(item)).
					Return(entity.ErrDataNotFound).Times(1)
			},
			expectedErr: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			item := tc.setup()

			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			tc.mocks(itemRepo, log, item)

			s := service.NewItemService(itemRepo, categoryRepo, log)

			err := s.Update(ctx, item)

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

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc  string
		mocks func(
			itemRepo *mock_repository.MockItemRepository,
			log *mock_logger.MockLogger,
			id uuid.UUID,
		)
		expectedErr error
	}{
		{
			desc: "Success",
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				id uuid.UUID,
			) {
				itemRepo.EXPECT().Delete(ctx, id).Return(nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "item deleted", gomock.Any()).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			// Deleting an id that was already removed behaves exactly like a
			// successful delete: the repository treats zero affected rows as
			// success, so the service logs and returns nil.
			desc: "AlreadyDeleted",
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				id uuid.UUID,
			) {
				itemRepo.EXPECT().Delete(ctx, id).Return(nil).Times(1)

				log.EXPECT().
					LogAttrs(ctx, gomock.Any(), "item deleted", gomock.Any()).
					Times(1)
			},
			expectedErr: nil,
		},
		{
			desc: "RepositoryError",
			mocks: func(
				itemRepo *mock_repository.MockItemRepository,
				log *mock_logger.MockLogger,
				id uuid.UUID,
			) {
				itemRepo.EXPECT().Delete(ctx, id).
					Return(errors.New("database error")).Times(1)
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

			itemRepo := mock_repository.NewMockItemRepository(ctrl)
			categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()

			tc.mocks(itemRepo, log, id)

			s := service.NewItemService(itemRepo, categoryRepo, log)

			err := s.Delete(ctx, id)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tc.expectedErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestItemService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		itemRepo := mock_repository.NewMockItemRepository(ctrl)
		categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
		log := mock_logger.NewMockLogger(ctrl)

		summaries := []*entity.ItemSummary{
			{ID: uuid.New(), Name: "Hammer", Description: "Claw hammer"},
			{ID: uuid.New(), Name: "Screwdriver", Description: "Phillips head"},
		}
		itemRepo.EXPECT().GetAllSummaries(ctx).Return(summaries, nil).Times(1)

		s := service.NewItemService(itemRepo, categoryRepo, log)

		got, err := s.List(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != len(summaries) {
			t.Fatalf("expected %d summaries, got %d", len(summaries), len(got))
		}
	})

	t.Run("RepositoryError", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		itemRepo := mock_repository.NewMockItemRepository(ctrl)
		categoryRepo := mock_repository.NewMockCategoryRepository(ctrl)
		log := mock_logger.NewMockLogger(ctrl)

		itemRepo.EXPECT().GetAllSummaries(ctx).
			Return(nil, errors.New("database error")).Times(1)

		s := service.NewItemService(itemRepo, categoryRepo, log)

		if _, err := s.List(ctx); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
