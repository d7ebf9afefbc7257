package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Pipeline initialized: %dx%d, effect %s": "パイプラインを初期化しました: %dx%d, エフェクト %s",
		"Surface created":                        "サーフェスを作成しました",
		"Surface resized to %dx%d":               "サーフェスを %dx%d にリサイズしました",
		"Effect switched to %s":                  "エフェクトを %s に切り替えました",
		"Pipeline released":                      "パイプラインを解放しました",
		"Interrupted, shutting down...":          "中断されました。シャットダウン中...",
		"Summary saved to %s":                    "サマリーを %s に保存しました",

		// Capture side
		"Frame source started: %dx%d":  "フレームソースを開始しました: %dx%d",
		"Frame source stopped":         "フレームソースを停止しました",
		"Received %d frames":           "%d フレームを受信しました",
		"Starting screencast":          "スクリーンキャストを開始",
		"Launching browser":            "ブラウザを起動中",
		"Navigating to %s":             "%s へ移動中",
		"Browser closed":               "ブラウザを閉じました",

		// Processing stage
		"Frame processing failed, keeping previous output: %v": "フレーム処理に失敗しました。前回の出力を維持します: %v",
		"Frame upload failed, keeping previous output: %v":     "フレームのアップロードに失敗しました。前回の出力を維持します: %v",
		"Frame conversion failed, dropping frame: %v":          "フレーム変換に失敗しました。フレームを破棄します: %v",
		"Processed %d frames (%d errors)":                      "%d フレームを処理しました (エラー %d 件)",

		// Rendering surface
		"Shader program linked":                   "シェーダープログラムをリンクしました",
		"Viewport set to %dx%d":                   "ビューポートを %dx%d に設定しました",
		"Uploaded frame %d to texture":            "フレーム %d をテクスチャにアップロードしました",
		"Rendering disabled after GL failure: %s": "GL障害のため描画を無効化しました: %s",

		// Debug sink
		"Failed to save session info: %v":   "セッション情報の保存に失敗しました: %v",
		"Failed to save luma dump: %v":      "輝度プレーンの保存に失敗しました: %v",
		"Failed to save processed dump: %v": "処理済みフレームの保存に失敗しました: %v",
		"Debug output saved to %s":          "デバッグ出力を %s に保存しました",

		// Warnings
		"Frame dropped: unexpected dimensions %dx%d": "フレームを破棄しました: 予期しない寸法 %dx%d",
		"Frame dropped: unexpected length %d":        "フレームを破棄しました: 予期しない長さ %d",
		"Draw skipped: no frame received yet":        "描画をスキップしました: フレーム未受信",

		// Errors
		"Pipeline error in %s: %v":         "パイプラインエラー (%s): %v",
		"Failed to close processor: %v":    "プロセッサのクローズに失敗しました: %v",
		"Failed to start frame source: %s": "フレームソースの開始に失敗しました: %s",
		"Failed to compile shader: %s":     "シェーダーのコンパイルに失敗しました: %s",
		"Failed to link program: %s":       "プログラムのリンクに失敗しました: %s",
		"Failed to initialize window: %s":  "ウィンドウの初期化に失敗しました: %s",
	})
}
