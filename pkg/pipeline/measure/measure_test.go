package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqtools/rnavar/pkg/pipeline/measure"
)

func TestMetricAverage(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("align")

	mt.AddDuration(2 * time.Second)
	mt.AddDuration(4 * time.Second)

	assert.Equal(t, int64(2), mt.Attempts())
	assert.Equal(t, 3*time.Second, mt.AVGDuration())
}

func TestMetricNoAttempts(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("idle")

	assert.Equal(t, int64(0), mt.Attempts())
	assert.Equal(t, time.Duration(0), mt.AVGDuration())
}

func TestMetricTotalDuration(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("end")
	mt.SetTotalDuration(time.Minute)

	assert.Equal(t, time.Minute, mt.GetTotalDuration())
}

func TestAddMetricReturnsExisting(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	first := msr.AddMetric("align")
	second := msr.AddMetric("align")

	assert.Same(t, first, second)
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestMeasureConcurrentAccess(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("align")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mt.AddDuration(time.Second)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(10), mt.Attempts())
	assert.Equal(t, time.Second, mt.AVGDuration())
}
