// internal/store/store.go
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go_5_vocab_reading/internal/model"
	"go_5_vocab_reading/internal/textmatch"
)

// TimeFormat は永続化ファイル内のタイムスタンプ形式です。
// 旧バージョンのファイルと同じ形式を維持します。
const TimeFormat = "2006-01-02 15:04:05"

// Store は語彙エントリとリーディングテキストの2つのコレクションを所有し、
// 1つのJSONドキュメントとして永続化します。シングルユーザ前提ですが、
// HTTPハンドラからの並行アクセスに備えて全操作をミューテックスで直列化します。
// 全ての更新操作は同期的にファイルへ保存されます。
// アクセサは常にコピーを返すので、呼び出し側が返り値を変更してもストアは壊れません。
type Store struct {
	path   string
	logger *slog.Logger
	rng    *rand.Rand
	now    func() time.Time
	mu     sync.Mutex

	vocabulary []*model.VocabEntry
	texts      []*model.ReadingText
}

func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// 永続化ドキュメント（現行フォーマット）
type document struct {
	Vocabulary   []*diskEntry         `json:"vocabulary"`
	ReadingTexts []*model.ReadingText `json:"reading_texts"`
}

// diskEntry は旧フォーマットの "timestamp" フィールドを受け取るための型です。
// マイグレーション後は Timestamp を空にして再保存するため、出力には現れません。
type diskEntry struct {
	model.VocabEntry
	Timestamp string `json:"timestamp,omitempty"`
}

// Load は永続化ドキュメントを読み込みます。
// ファイルが無いのはエラーではなく、空のストアとして開始し情報メッセージを返します。
// 読み込み・パース失敗時はエラーを返し、両コレクションを空にリセットします。
// 旧フォーマット（語彙のみのベタ配列）はその場でマイグレーションし、即座に再保存します。
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.vocabulary = nil
			s.texts = nil
			return "no existing data file found", nil
		}
		s.vocabulary = nil
		s.texts = nil
		return "", fmt.Errorf("%w: reading %s: %v", model.ErrIOFailure, s.path, err)
	}

	var entries []*diskEntry
	var texts []*model.ReadingText
	legacyArray := false

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		// 旧フォーマット: ルートが語彙の配列
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			s.vocabulary = nil
			s.texts = nil
			return "", fmt.Errorf("%w: parsing legacy document: %v", model.ErrIOFailure, err)
		}
		legacyArray = true
	} else {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			s.vocabulary = nil
			s.texts = nil
			return "", fmt.Errorf("%w: parsing document: %v", model.ErrIOFailure, err)
		}
		entries = doc.Vocabulary
		texts = doc.ReadingTexts
	}

	// JSONとしては妥当でも要素が null のドキュメントは壊れている扱いにする
	for _, e := range entries {
		if e == nil {
			s.vocabulary = nil
			s.texts = nil
			return "", fmt.Errorf("%w: parsing document: null vocabulary entry", model.ErrIOFailure)
		}
	}
	for _, t := range texts {
		if t == nil {
			s.vocabulary = nil
			s.texts = nil
			return "", fmt.Errorf("%w: parsing document: null reading text", model.ErrIOFailure)
		}
	}

	migrated := s.migrate(entries)

	s.vocabulary = make([]*model.VocabEntry, 0, len(entries))
	for _, de := range entries {
		e := de.VocabEntry
		s.vocabulary = append(s.vocabulary, &e)
	}
	s.texts = texts

	if migrated || legacyArray {
		if err := s.save(); err != nil {
			s.logger.Warn("Failed to re-save migrated document", "error", err)
		}
		return fmt.Sprintf("loaded and migrated %d vocabulary entries, %d reading texts",
			len(s.vocabulary), len(s.texts)), nil
	}
	return fmt.Sprintf("loaded %d vocabulary entries, %d reading texts",
		len(s.vocabulary), len(s.texts)), nil
}

// migrate は id を持たないレコードを現行フォーマットに引き上げます。
// id は元の配列位置（1始まり）、created_at は旧 timestamp フィールドがあればそれを、
// なければ現在時刻を使います。トラッキングフィールドはゼロ値のままで正しい空状態です。
func (s *Store) migrate(entries []*diskEntry) bool {
	migrated := false
	for i, e := range entries {
		if e.ID != 0 {
			continue
		}
		migrated = true
		e.ID = i + 1
		if e.Timestamp != "" {
			e.CreatedAt = e.Timestamp
			e.Timestamp = ""
		} else if e.CreatedAt == "" {
			e.CreatedAt = s.now().Format(TimeFormat)
		}
	}
	return migrated
}

// Save は両コレクションを1つのJSONドキュメントとして書き出します。
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save は永続化の実体です。呼び出し側がロックを保持している前提です。
// 保存先ディレクトリが無ければ作成します。
func (s *Store) save() error {
	entries := make([]*diskEntry, 0, len(s.vocabulary))
	for _, e := range s.vocabulary {
		entries = append(entries, &diskEntry{VocabEntry: *e})
	}
	doc := document{
		Vocabulary:   entries,
		ReadingTexts: s.texts,
	}
	if doc.ReadingTexts == nil {
		doc.ReadingTexts = []*model.ReadingText{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling document: %v", model.ErrIOFailure, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", model.ErrIOFailure, dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", model.ErrIOFailure, s.path, err)
	}
	return nil
}

// --- 語彙の更新操作 ---

// Add は新しいエントリを追加して保存します。
// 入力の形は検証しません（空文字も受け付ける。バリデーションは呼び出し側の責務）。
// 保存に失敗してもメモリ上の追加はロールバックされません（既知の弱点、§7）。
func (s *Store) Add(english, german string) (*model.VocabEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &model.VocabEntry{
		ID:        s.nextVocabID(),
		English:   english,
		German:    german,
		CreatedAt: s.now().Format(TimeFormat),
	}
	s.vocabulary = append(s.vocabulary, entry)
	if err := s.save(); err != nil {
		return entry.Clone(), err
	}
	return entry.Clone(), nil
}

// Update は指定フィールドだけを適用して保存します。
// 見つからなければ何も変更せず ErrNotFound を返します。
func (s *Store) Update(id int, english, german *string) (*model.VocabEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.findVocab(id)
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %d", model.ErrNotFound, id)
	}
	if english != nil {
		entry.English = *english
	}
	if german != nil {
		entry.German = *german
	}
	if err := s.save(); err != nil {
		return entry.Clone(), err
	}
	return entry.Clone(), nil
}

// Delete は一致するIDのエントリを削除して保存します。
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.vocabulary {
		if e.ID == id {
			s.vocabulary = append(s.vocabulary[:i], s.vocabulary[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("%w: entry %d", model.ErrNotFound, id)
}

// RecordResult はクイズ1問の結果を記録します。
// トラッキングフィールド (last_queried, last_result, カウンタ) を変更する唯一の操作です。
func (s *Store) RecordResult(id int, correct bool) (*model.VocabEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.findVocab(id)
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %d", model.ErrNotFound, id)
	}
	queried := s.now().Format(TimeFormat)
	entry.LastQueried = &queried
	result := correct
	entry.LastResult = &result
	if correct {
		entry.CorrectCount++
	} else {
		entry.WrongCount++
	}
	if err := s.save(); err != nil {
		return entry.Clone(), err
	}
	return entry.Clone(), nil
}

// --- リーディングテキストの更新操作 ---

// AddText はテキストを追加して保存します。
// word_count と vocabulary_matches はここで一度だけ計算されるスナップショットで、
// 以後語彙が変わっても再計算しません（仕様上の意図的なキャッシュ）。
func (s *Store) AddText(title, content string) (*model.ReadingText, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := textmatch.FindMatches(s.vocabulary, content)
	text := &model.ReadingText{
		ID:                s.nextTextID(),
		Title:             title,
		Content:           content,
		UploadedAt:        s.now().Format(TimeFormat),
		WordCount:         len(strings.Fields(content)),
		VocabularyMatches: len(matches),
	}
	s.texts = append(s.texts, text)
	if err := s.save(); err != nil {
		return text.Clone(), err
	}
	return text.Clone(), nil
}

func (s *Store) DeleteText(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.texts {
		if t.ID == id {
			s.texts = append(s.texts[:i], s.texts[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("%w: text %d", model.ErrNotFound, id)
}

// --- 読み取り ---

func (s *Store) GetAll() []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.vocabulary)
}

func (s *Store) GetByID(id int) (*model.VocabEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.findVocab(id); e != nil {
		return e.Clone(), nil
	}
	return nil, fmt.Errorf("%w: entry %d", model.ErrNotFound, id)
}

func (s *Store) GetAllTexts() []*model.ReadingText {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.ReadingText, 0, len(s.texts))
	for _, t := range s.texts {
		out = append(out, t.Clone())
	}
	return out
}

func (s *Store) GetTextByID(id int) (*model.ReadingText, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.texts {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: text %d", model.ErrNotFound, id)
}

// --- 内部ヘルパー ---

func (s *Store) findVocab(id int) *model.VocabEntry {
	for _, e := range s.vocabulary {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// nextVocabID は 既存の最大ID+1 を返します（空なら1）。
func (s *Store) nextVocabID() int {
	max := 0
	for _, e := range s.vocabulary {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func (s *Store) nextTextID() int {
	max := 0
	for _, t := range s.texts {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func cloneEntries(entries []*model.VocabEntry) []*model.VocabEntry {
	out := make([]*model.VocabEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}
