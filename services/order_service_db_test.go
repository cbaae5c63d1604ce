package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/faouziesf/cod-manager/database"
	"github.com/faouziesf/cod-manager/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testDB connects to the database named by TEST_DATABASE_URL and skips
// the test when it is unset, so the suite stays runnable without
// infrastructure.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	admin := &models.User{
		Name:     "Tenant Admin",
		Email:    fmt.Sprintf("admin-%s@example.test", uuid.NewString()),
		Password: "x",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func seedProduct(t *testing.T, db *gorm.DB, adminID uint, stock int, price float64) *models.Product {
	t.Helper()
	p := &models.Product{
		AdminID:  adminID,
		Name:     fmt.Sprintf("product-%s", uuid.NewString()),
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestConfirmOrderDecrementsStock(t *testing.T) {
	db := testDB(t)
	admin := seedAdmin(t, db)
	shirts := seedProduct(t, db, admin.ID, 10, 29.9)
	shoes := seedProduct(t, db, admin.ID, 5, 89.0)

	svc := NewOrderService(db)
	order, err := svc.CreateOrder(CreateOrderInput{
		FirstName:  "Amine",
		LastName:   "Ben Salah",
		Phone1:     "20123456",
		Region:     "Tunis",
		Address:    "12 rue de Marseille",
		TotalPrice: 326.8,
		Items: []OrderItemInput{
			{ProductID: shirts.ID, Quantity: 2},
			{ProductID: shoes.ID, Quantity: 3},
		},
	}, admin)
	require.NoError(t, err)

	confirmed, err := svc.ConfirmOrder(order.ID, nil, "client agreed", admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	if assert.NotNil(t, confirmed.ConfirmedPrice) {
		assert.InDelta(t, 326.8, *confirmed.ConfirmedPrice, 0.001)
	}

	// Each line product loses exactly its ordered quantity.
	var p models.Product
	require.NoError(t, db.First(&p, shirts.ID).Error)
	assert.Equal(t, 8, p.Stock)
	require.NoError(t, db.First(&p, shoes.ID).Error)
	assert.Equal(t, 2, p.Stock)
}

func TestConfirmOrderMissingContactLeavesEverythingUntouched(t *testing.T) {
	db := testDB(t)
	admin := seedAdmin(t, db)
	product := seedProduct(t, db, admin.ID, 10, 15.0)

	svc := NewOrderService(db)
	order, err := svc.CreateOrder(CreateOrderInput{
		Phone1:     "20123456",
		Region:     "Sfax",
		TotalPrice: 30.0,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	}, admin)
	require.NoError(t, err)

	_, err = svc.ConfirmOrder(order.ID, nil, "", admin)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.StatusStandard, reloaded.Status)
	assert.Equal(t, 0, reloaded.Attempts)
	assert.Nil(t, reloaded.ConfirmedPrice)

	var p models.Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 10, p.Stock)
}

func TestResetDailyAttemptsKeepsTotals(t *testing.T) {
	db := testDB(t)
	admin := seedAdmin(t, db)

	orders := []models.Order{
		{Reference: uuid.NewString(), AdminID: admin.ID, CreatedBy: admin.ID,
			Phone1: "1", Region: "Tunis", TotalPrice: 1, Status: models.StatusStandard,
			Attempts: 4, DailyAttempts: 2},
		{Reference: uuid.NewString(), AdminID: admin.ID, CreatedBy: admin.ID,
			Phone1: "2", Region: "Tunis", TotalPrice: 1, Status: models.StatusDated,
			Attempts: 1, DailyAttempts: 1},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	_, err := NewOrderService(db).ResetDailyAttempts()
	require.NoError(t, err)

	for _, o := range orders {
		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, o.ID).Error)
		assert.Equal(t, 0, reloaded.DailyAttempts)
		assert.Equal(t, o.Attempts, reloaded.Attempts)
	}
}

func TestSeatLimitCountsTenantWideForManagers(t *testing.T) {
	db := testDB(t)
	admin := seedAdmin(t, db)

	manager := &models.User{
		Name:     "Floor Manager",
		Email:    fmt.Sprintf("manager-%s@example.test", uuid.NewString()),
		Password: "x",
		Role:     models.RoleManager,
		AdminID:  &admin.ID,
		IsActive: true,
	}
	require.NoError(t, db.Create(manager).Error)

	for i := 0; i < 2; i++ {
		employee := &models.User{
			Name:      fmt.Sprintf("Employee %d", i),
			Email:     fmt.Sprintf("employee-%s@example.test", uuid.NewString()),
			Password:  "x",
			Role:      models.RoleEmployee,
			AdminID:   &admin.ID,
			ManagerID: &manager.ID,
			IsActive:  true,
		}
		require.NoError(t, db.Create(employee).Error)
	}

	settings := models.DefaultSetting(admin.ID)
	settings.MaxEmployees = 2
	svc := NewUserService(db)

	// The tenant pool is full, no matter who asks.
	ok, err := svc.CanCreateMore(manager, models.RoleEmployee, settings)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = svc.CanCreateMore(admin, models.RoleEmployee, settings)
	require.NoError(t, err)
	assert.False(t, ok)

	settings.MaxEmployees = 3
	ok, err = svc.CanCreateMore(manager, models.RoleEmployee, settings)
	require.NoError(t, err)
	assert.True(t, ok)
}
