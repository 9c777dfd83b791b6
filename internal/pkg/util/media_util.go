package util

import (
	"bytes"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

const avatarThumbSize = 256

// GetSafeContentType 基于文件头嗅探 MIME 类型，不信任客户端声明。
// reader 必须支持 Seek，读取后会回到起始位置。
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// MakeAvatarThumbnail 将上传的头像裁剪为居中正方形缩略图，统一输出 JPEG
func MakeAvatarThumbnail(reader io.Reader) (io.Reader, int64, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, err
	}

	thumb := imaging.Fill(img, avatarThumbSize, avatarThumbSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, 0, err
	}
	return &buf, int64(buf.Len()), nil
}
