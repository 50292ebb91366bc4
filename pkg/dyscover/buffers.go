package dyscover

import "unicode/utf8"

// speechBuffers holds the text typed since the last word and sentence boundary.
type speechBuffers struct {
	word     []byte
	sentence []byte
}

func (b *speechBuffers) append(text string) {
	b.word = append(b.word, text...)
	b.sentence = append(b.sentence, text...)
}

// wordBoundary clears the word and leaves a space in the sentence. It returns
// the finished word.
func (b *speechBuffers) wordBoundary() string {
	word := string(b.word)
	b.word = b.word[:0]
	b.sentence = append(b.sentence, ' ')
	return word
}

func (b *speechBuffers) sentenceBoundary() (word, sentence string) {
	word, sentence = string(b.word), string(b.sentence)
	b.word = b.word[:0]
	b.sentence = b.sentence[:0]
	return word, sentence
}

// backspace pops the last character of each buffer on its own.
func (b *speechBuffers) backspace() {
	b.word = popRune(b.word)
	b.sentence = popRune(b.sentence)
}

func popRune(buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	_, size := utf8.DecodeLastRune(buf)
	return buf[:len(buf)-size]
}
