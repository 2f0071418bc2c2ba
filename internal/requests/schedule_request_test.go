package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobValidate(t *testing.T) {
	assert.NoError(t, Job{ProcessId: 1, BurstTime: 3}.Validate())
	assert.NoError(t, Job{ProcessId: 1, BurstTime: 3, Period: 20, Deadline: 20}.Validate())

	for _, j := range []Job{
		{ProcessId: 1, BurstTime: 0},
		{ProcessId: 2, BurstTime: 1, ArrivalTime: -1},
		{ProcessId: 3, BurstTime: 1, Deadline: -5},
	} {
		assert.ErrorIs(t, j.Validate(), ErrInvalidJob)
	}
}

func TestValidateJobsStopsAtFirstBadJob(t *testing.T) {
	err := ValidateJobs([]Job{{ProcessId: 1, BurstTime: 2}, {ProcessId: 7, BurstTime: -1}})
	assert.ErrorContains(t, err, "process 7")
	assert.NoError(t, ValidateJobs(nil))
}
