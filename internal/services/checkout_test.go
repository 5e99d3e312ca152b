package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
)

var testDBCounter int64

// newTestDB ouvre une base SQLite en mémoire partagée. _txlock=immediate
// fait démarrer chaque transaction en écrivain : les checkouts concurrents
// se sérialisent au lieu de s'interbloquer.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:checkout_test_%d?mode=memory&cache=shared&_busy_timeout=5000&_txlock=immediate", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []models.Order
	alerts        []models.Product
	statuses      []string
	fail          bool
}

func (f *fakeNotifier) SendOrderConfirmation(order models.Order, _ models.CustomerData, _ map[string]models.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp injoignable")
	}
	f.confirmations = append(f.confirmations, order)
	return nil
}

func (f *fakeNotifier) SendStockAlert(product models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp injoignable")
	}
	f.alerts = append(f.alerts, product)
	return nil
}

func (f *fakeNotifier) SendOrderStatus(_ models.Order, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return nil
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	cat := models.Category{Name: "Sound Crackers " + name, Description: "test"}
	require.NoError(t, db.Create(&cat).Error)

	p := models.Product{
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    cat.ID,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func validCustomer() models.CustomerData {
	return models.CustomerData{
		FullName:        "Ravi Kumar",
		Email:           "ravi@example.com",
		Phone:           "9876543210",
		DeliveryAddress: "12 Main Street, Sivakasi",
	}
}

func cartFor(p models.Product, price float64, qty int) map[string]models.CartLine {
	return map[string]models.CartLine{
		fmt.Sprint(p.ID): {Name: p.Name, Price: price, Quantity: qty},
	}
}

func TestCheckoutSuccess(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(db, notifier, 5)

	p := seedProduct(t, db, "Thunder King", 100.0, 10)

	summary, err := svc.Checkout(validCustomer(), cartFor(p, 100.0, 3), nil)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 300.0, summary.Total)
	assert.NotEmpty(t, summary.OrderNumber)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 7, reloaded.StockQuantity)

	var orders []models.Order
	require.NoError(t, db.Preload("Items").Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.Equal(t, 300.0, orders[0].TotalAmount)
	assert.Nil(t, orders[0].UserID) // commande invité

	require.Len(t, orders[0].Items, 1)
	item := orders[0].Items[0]
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 100.0, item.Price)
	assert.Equal(t, "Thunder King", item.ProductName)

	assert.Len(t, notifier.confirmations, 1)
	assert.Empty(t, notifier.alerts) // 7 ≥ seuil de 5, pas d'alerte
}

func TestCheckoutLowStockAlertOnce(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(db, notifier, 10)

	// 12 - 9 = 3 < 10 : alerte attendue, une seule fois
	p := seedProduct(t, db, "Festival Pack", 50.0, 12)

	_, err := svc.Checkout(validCustomer(), cartFor(p, 50.0, 9), nil)
	require.NoError(t, err)

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "Festival Pack", notifier.alerts[0].Name)
	assert.Equal(t, 3, notifier.alerts[0].StockQuantity)
	// L'e-mail d'alerte affiche la catégorie : elle doit être chargée
	assert.Equal(t, "Sound Crackers Festival Pack", notifier.alerts[0].Category.Name)
	assert.Len(t, notifier.confirmations, 1)
}

func TestCheckoutNoAlertAboveThreshold(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(db, notifier, 10)

	// 50 - 3 = 47 : pas d'alerte
	p := seedProduct(t, db, "Sky Blaster", 200.0, 50)

	_, err := svc.Checkout(validCustomer(), cartFor(p, 200.0, 3), nil)
	require.NoError(t, err)
	assert.Empty(t, notifier.alerts)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(db, notifier, 10)

	p := seedProduct(t, db, "Boom Box", 100.0, 10)

	_, err := svc.Checkout(validCustomer(), cartFor(p, 100.0, 20), nil)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Boom Box", stockErr.ProductName)
	assert.Contains(t, err.Error(), "Boom Box")

	// Atomicité : aucune commande, stock intact
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 10, reloaded.StockQuantity)

	assert.Empty(t, notifier.confirmations)
	assert.Empty(t, notifier.alerts)
}

func TestCheckoutUnknownProductAbortsEverything(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(db, notifier, 10)

	p := seedProduct(t, db, "Color Burst", 80.0, 30)

	cart := cartFor(p, 80.0, 2)
	cart["99999"] = models.CartLine{Name: "Fantôme", Price: 10.0, Quantity: 1}

	_, err := svc.Checkout(validCustomer(), cart, nil)
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "99999", notFound.ProductID)

	// La ligne valide ne doit pas avoir été débitée
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 30, reloaded.StockQuantity)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestCheckoutNonNumericProductID(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)

	cart := map[string]models.CartLine{
		"abc": {Name: "?", Price: 10.0, Quantity: 1},
	}
	_, err := svc.Checkout(validCustomer(), cart, nil)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)

	_, err := svc.Checkout(validCustomer(), map[string]models.CartLine{}, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCheckoutMissingCustomerFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)
	p := seedProduct(t, db, "Magic Wand", 60.0, 20)

	cases := []models.CustomerData{
		{Email: "a@b.c", Phone: "1", DeliveryAddress: "x"},                    // nom manquant
		{FullName: "A B", Phone: "1", DeliveryAddress: "x"},                   // email manquant
		{FullName: "A B", Email: "a@b.c", DeliveryAddress: "x"},               // téléphone manquant
		{FullName: "A B", Email: "a@b.c", Phone: "1"},                         // adresse manquante
		{FullName: "   ", Email: "a@b.c", Phone: "1", DeliveryAddress: "x"},   // blanc
	}

	for _, customer := range cases {
		_, err := svc.Checkout(customer, cartFor(p, 60.0, 1), nil)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	}

	// Aucune mutation
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 20, reloaded.StockQuantity)
}

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)
	p := seedProduct(t, db, "Star Rain", 70.0, 20)

	_, err := svc.Checkout(validCustomer(), cartFor(p, 70.0, 0), nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestCheckoutNotifierFailureDoesNotFailOrder(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{fail: true}
	svc := NewCheckoutService(db, notifier, 10)

	// Passe sous le seuil pour déclencher aussi l'alerte
	p := seedProduct(t, db, "Night Pearl", 100.0, 12)

	summary, err := svc.Checkout(validCustomer(), cartFor(p, 100.0, 9), nil)
	require.NoError(t, err)
	require.NotNil(t, summary)

	// La commande est bien durable malgré le SMTP en panne
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 1, orderCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 3, reloaded.StockQuantity)
}

func TestCheckoutUsesClientSuppliedPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)

	// Prix catalogue 150, prix client 100 : le total suit le prix client
	// (comportement documenté, voir DESIGN.md)
	p := seedProduct(t, db, "Pearl Shot", 150.0, 20)

	summary, err := svc.Checkout(validCustomer(), cartFor(p, 100.0, 3), nil)
	require.NoError(t, err)
	assert.Equal(t, 300.0, summary.Total)

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, 100.0, item.Price)
}

func TestCheckoutMultiLineTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)

	p1 := seedProduct(t, db, "Color Wheel", 40.0, 30)
	p2 := seedProduct(t, db, "Rainbow Fall", 90.0, 30)

	cart := map[string]models.CartLine{
		fmt.Sprint(p1.ID): {Name: p1.Name, Price: 40.0, Quantity: 2},
		fmt.Sprint(p2.ID): {Name: p2.Name, Price: 90.0, Quantity: 3},
	}

	summary, err := svc.Checkout(validCustomer(), cart, nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0*2+90.0*3, summary.Total)

	var orders []models.Order
	require.NoError(t, db.Preload("Items").Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, orders[0].TotalAmount, summary.Total)
}

func TestCheckoutProfileUpdateBestEffort(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)

	u := models.User{
		Email:    "ravi@example.com",
		Password: "hash",
		Role:     models.RoleCustomer,
	}
	require.NoError(t, db.Create(&u).Error)

	p := seedProduct(t, db, "Spin Master", 30.0, 20)

	customer := validCustomer()
	customer.UpdateProfile = true

	summary, err := svc.Checkout(customer, cartFor(p, 30.0, 1), &u)
	require.NoError(t, err)
	require.NotNil(t, summary)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, u.ID).Error)
	assert.Equal(t, "Ravi", reloaded.FirstName)
	assert.Equal(t, "Kumar", reloaded.LastName)
	assert.Equal(t, "9876543210", reloaded.PhoneNumber)
	assert.Equal(t, "12 Main Street, Sivakasi", reloaded.Address)
	// L'email n'est jamais synchronisé depuis le checkout
	assert.Equal(t, "ravi@example.com", reloaded.Email)

	// La commande est rattachée à l'utilisateur
	var order models.Order
	require.NoError(t, db.First(&order).Error)
	require.NotNil(t, order.UserID)
	assert.Equal(t, u.ID, *order.UserID)
}

func TestCheckoutProfileUpdateSurvivesFailedTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, &fakeNotifier{}, 10)

	u := models.User{Email: "x@y.z", Password: "hash", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&u).Error)

	p := seedProduct(t, db, "Echo Plus", 30.0, 2)

	customer := validCustomer()
	customer.UpdateProfile = true

	// Stock insuffisant : la transaction échoue, le profil reste mis à jour
	_, err := svc.Checkout(customer, cartFor(p, 30.0, 5), &u)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, u.ID).Error)
	assert.Equal(t, "Ravi", reloaded.FirstName)
	assert.Equal(t, "12 Main Street, Sivakasi", reloaded.Address)
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(db, notifier, 2)

	const (
		initialStock = 10
		perOrder     = 3
		callers      = 5
	)
	p := seedProduct(t, db, "Blast Master", 100.0, initialStock)

	var wg sync.WaitGroup
	var successes atomic.Int64
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Checkout(validCustomer(), cartFor(p, 100.0, perOrder), nil)
			if err == nil {
				successes.Add(1)
			} else {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)

	// Jamais de survente : le stock final est exactement l'initial moins
	// les commandes réussies, et jamais négatif.
	assert.GreaterOrEqual(t, reloaded.StockQuantity, 0)
	assert.Equal(t, initialStock-perOrder*int(successes.Load()), reloaded.StockQuantity)
	assert.LessOrEqual(t, int(successes.Load()), initialStock/perOrder)
	assert.GreaterOrEqual(t, int(successes.Load()), 1)

	for err := range errs {
		var stockErr *InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, successes.Load(), orderCount)
}
