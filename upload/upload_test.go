package upload_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal/mocks"
	"github.com/vkngwrapper/conduit/hal/software"
	"github.com/vkngwrapper/conduit/upload"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

func newBuffer(t *testing.T, pageSize int) (*upload.Buffer, *software.Device) {
	device := software.NewDevice()
	buffer, err := upload.New(slog.New(slog.NewTextHandler(io.Discard)), device, pageSize)
	require.NoError(t, err)
	return buffer, device
}

func TestUploadAllocatesLinearly(t *testing.T) {
	buffer, _ := newBuffer(t, 1024)

	first, err := buffer.Allocate(10, 1)
	require.NoError(t, err)
	require.Equal(t, 0, first.Offset)
	require.Len(t, first.Data, 10)

	second, err := buffer.Allocate(64, 256)
	require.NoError(t, err)
	require.Equal(t, 256, second.Offset)
	require.Equal(t, first.Page, second.Page)
	require.Equal(t, first.GPUAddress+256, second.GPUAddress)

	copy(second.Data, []byte{1, 2, 3})
	require.Equal(t, []byte{1, 2, 3}, second.Page.Bytes()[256:259])

	require.Equal(t, 1, buffer.PageCount())
}

func TestUploadStartsNewPageWhenFull(t *testing.T) {
	buffer, device := newBuffer(t, 1024)

	first, err := buffer.Allocate(1000, 4)
	require.NoError(t, err)

	second, err := buffer.Allocate(100, 4)
	require.NoError(t, err)
	require.NotEqual(t, first.Page, second.Page)
	require.Equal(t, 0, second.Offset)
	require.Equal(t, 2, buffer.PageCount())
	require.Equal(t, 2048, device.UploadBytes())
}

func TestUploadResetReusesPages(t *testing.T) {
	buffer, device := newBuffer(t, 1024)

	first, err := buffer.Allocate(1000, 4)
	require.NoError(t, err)
	_, err = buffer.Allocate(1000, 4)
	require.NoError(t, err)

	buffer.Reset()

	again, err := buffer.Allocate(16, 16)
	require.NoError(t, err)
	require.Equal(t, first.Page, again.Page)
	require.Equal(t, 0, again.Offset)
	require.Equal(t, 2, buffer.PageCount())
	require.Equal(t, 2048, device.UploadBytes())
}

func TestUploadErrors(t *testing.T) {
	buffer, _ := newBuffer(t, 1024)

	_, err := buffer.Allocate(1025, 1)
	require.ErrorIs(t, err, gpuutils.UploadTooLargeError)

	_, err = buffer.Allocate(16, 3)
	require.ErrorIs(t, err, gpuutils.PowerOfTwoError)

	_, err = buffer.Allocate(16, 0)
	require.ErrorIs(t, err, gpuutils.PowerOfTwoError)

	_, err = buffer.Allocate(1000, 2048)
	require.ErrorIs(t, err, gpuutils.UploadTooLargeError)
}

func TestUploadDefaultPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)

	page := mocks.NewMockUploadPage(ctrl)
	page.EXPECT().Size().Return(upload.DefaultPageSize).AnyTimes()
	page.EXPECT().Bytes().Return(make([]byte, upload.DefaultPageSize))
	page.EXPECT().GPUAddress().Return(uint64(0x40000))

	device := mocks.NewMockDevice(ctrl)
	device.EXPECT().CreateUploadPage(upload.DefaultPageSize).Return(page, nil)

	buffer, err := upload.New(slog.New(slog.NewTextHandler(io.Discard)), device, 0)
	require.NoError(t, err)
	require.Equal(t, upload.DefaultPageSize, buffer.PageSize())

	alloc, err := buffer.Allocate(128, 64)
	require.NoError(t, err)
	require.Equal(t, uint64(0x40000), alloc.GPUAddress)
}
