package util

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"strings"
)

// SniffText 校验内容为文本（目录包为 YAML），返回可继续读取完整内容的 reader
func SniffText(reader io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(reader, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	mimeType := http.DetectContentType(head)
	if !strings.HasPrefix(mimeType, "text/") {
		return nil, errors.New("invalid bundle type: " + mimeType)
	}
	return br, nil
}
