package filebands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAccumulatesNamesSizesAndContents(t *testing.T) {
	b := New()
	b.Add(File{Name: "a.txt", Contents: []byte("hello"), ModTime: 1000})
	b.Add(File{Name: "b.txt", Contents: []byte("hi"), ModTime: 1010})

	require.Equal(t, []string{"a.txt", "b.txt"}, b.Names)
	require.Equal(t, []int64{5, 2}, b.Sizes)
	require.Equal(t, []byte("hellohi"), b.Contents)
	require.Equal(t, 2, b.Count())
}

func TestModTimesAreDeltaEncoded(t *testing.T) {
	b := New()
	b.Add(File{Name: "a", ModTime: 1000})
	b.Add(File{Name: "b", ModTime: 1010})
	b.Add(File{Name: "c", ModTime: 1005})

	require.Equal(t, []int64{1000, 10, -5}, b.ModTimes)
	require.True(t, b.HaveModTimes())
}

func TestOptionsTrackDeflateAndDirectoryBits(t *testing.T) {
	b := New()
	b.Add(File{Name: "a", Deflated: true})
	b.Add(File{Name: "dir/", Directory: true})
	b.Add(File{Name: "plain"})

	require.True(t, b.HaveOptions())
	require.True(t, b.HaveDeflateHint())
	require.Equal(t, int64(0), b.Options[2])
}

func TestAddPassedClassUsesClassNameConvention(t *testing.T) {
	b := New()
	b.AddPassedClass("a/Weird", []byte{0xCA, 0xFE}, 500)

	require.Equal(t, "a/Weird.class", b.Names[0])
	require.Equal(t, []byte{0xCA, 0xFE}, b.Contents)
}

func TestNoFilesMeansNoOptionOrModTimeBits(t *testing.T) {
	b := New()
	require.False(t, b.HaveModTimes())
	require.False(t, b.HaveOptions())
	require.False(t, b.HaveDeflateHint())
}
