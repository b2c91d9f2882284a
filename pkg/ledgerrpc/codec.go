package ledgerrpc

import (
	json "github.com/goccy/go-json"
	"google.golang.org/grpc/encoding"
)

// CodecName content-subtype，請求會以 application/grpc+json 送出
const CodecName = "json"

// jsonCodec 讓 gRPC 以 JSON 編碼訊息，訊息型別不需要 protoc 產生
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
