package middleware

import (
	"encoding/json"
	"net/http"
)

// FailResponseBody はクライアント起因エラー（4xx）のレスポンスフォーマット。
type FailResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WriteFail は{"status":"fail"}のエラーレスポンスを書き込む。
// 4xx系のクライアント起因エラーで使用する。
func WriteFail(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(FailResponseBody{
		Status:  "fail",
		Message: message,
	})
}

// WriteInternalServerError は{"status":"error"}の内部エラーレスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(FailResponseBody{
		Status:  "error",
		Message: "サーバー側で問題が発生しました",
	})
}
