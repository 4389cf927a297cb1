package orders

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Order numbers follow ORD + yymmdd + a 3-digit random suffix. The suffix is
// random rather than sequential, so collisions within one day are possible;
// the unique index on orders.order_number catches them and the service
// retries once with a fresh suffix.
const orderNumberPrefix = "ORD"

var orderNumberRand = struct {
	sync.Mutex
	*rand.Rand
}{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}

func randomSuffix() int {
	orderNumberRand.Lock()
	defer orderNumberRand.Unlock()
	return orderNumberRand.Intn(1000)
}

func formatOrderNumber(at time.Time, suffix int) string {
	return fmt.Sprintf("%s%s%03d", orderNumberPrefix, at.Format("060102"), suffix%1000)
}

func newOrderNumber(at time.Time) string {
	return formatOrderNumber(at, randomSuffix())
}
