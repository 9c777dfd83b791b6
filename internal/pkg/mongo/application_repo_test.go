package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// 公司排行的排序契约：数量降序、同数按公司名升序、截断到 limit。
// 排序完全由管道阶段决定，这里直接核对阶段内容。
func TestTopCompaniesPipeline(t *testing.T) {
	pipeline := topCompaniesPipeline(7, 10)
	require.Len(t, pipeline, 4)

	match := pipeline[0]
	require.Equal(t, "$match", match[0].Key)
	assert.Equal(t, bson.M{"user_id": uint64(7)}, match[0].Value)

	group := pipeline[1]
	require.Equal(t, "$group", group[0].Key)
	assert.Equal(t, bson.M{"_id": "$company", "count": bson.M{"$sum": 1}}, group[0].Value)

	sortStage := pipeline[2]
	require.Equal(t, "$sort", sortStage[0].Key)
	sortDoc, ok := sortStage[0].Value.(bson.D)
	require.True(t, ok, "排序键必须用 bson.D 保证字段次序")
	require.Len(t, sortDoc, 2)
	assert.Equal(t, "count", sortDoc[0].Key)
	assert.Equal(t, -1, sortDoc[0].Value, "先按数量降序")
	assert.Equal(t, "_id", sortDoc[1].Key)
	assert.Equal(t, 1, sortDoc[1].Value, "同数按公司名升序，保证排序稳定")

	limitStage := pipeline[3]
	require.Equal(t, "$limit", limitStage[0].Key)
	assert.Equal(t, 10, limitStage[0].Value)
}
