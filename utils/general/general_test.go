package generalutils_test

import (
	"errors"
	"testing"

	mock_sessionctl "github.com/BerryBytes/sessionctl/tests/mock"
	generalutils "github.com/BerryBytes/sessionctl/utils/general"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://example.awsapps.com/start"

func TestBrowserOpenPerPlatform(t *testing.T) {
	cases := []struct {
		goos string
		name string
		args []interface{}
	}{
		{goos: "darwin", name: "open", args: []interface{}{testURL}},
		{goos: "windows", name: "cmd", args: []interface{}{"/C", "start", "", testURL}},
		{goos: "linux", name: "xdg-open", args: []interface{}{testURL}},
	}

	for _, tc := range cases {
		t.Run(tc.goos, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			executor := mock_sessionctl.NewMockCommandExecutor(ctrl)
			executor.EXPECT().RunCommand(tc.name, tc.args...).Return([]byte{}, nil)

			browser := &generalutils.Browser{Executor: executor, GOOS: tc.goos}
			require.NoError(t, browser.Open(testURL))
		})
	}
}

func TestBrowserOpenReportsCommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	executor := mock_sessionctl.NewMockCommandExecutor(ctrl)
	executor.EXPECT().RunCommand("xdg-open", testURL).
		Return([]byte("no display"), errors.New("exit status 3"))

	browser := &generalutils.Browser{Executor: executor, GOOS: "linux"}
	err := browser.Open(testURL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open browser")
	assert.Contains(t, err.Error(), "no display")
}
