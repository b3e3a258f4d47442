package cartControllers

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/solestride/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// unreachableDriver fails every connection attempt, standing in for a
// database that went away mid-request.
type unreachableDriver struct{}

func (unreachableDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("connection refused")
}

func init() {
	sql.Register("cart-unreachable", unreachableDriver{})
}

func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("cart-unreachable", "")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestRefreshTotalsLogsReloadFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	refreshTotals(unreachableDB(t), &models.Cart{CartID: 7})

	assert.Contains(t, buf.String(), "cart: failed to reload cart 7")
}
