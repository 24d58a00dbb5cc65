package parser

// headerCursor 列头游标
// 成对字段一次消费两列，其余一次一列
type headerCursor struct {
	headers []string
	pos     int
}

func newHeaderCursor(headers []string) *headerCursor {
	return &headerCursor{headers: headers}
}

func (c *headerCursor) done() bool {
	return c.pos >= len(c.headers)
}

// current 当前列索引与列名
func (c *headerCursor) current() (int, string) {
	return c.pos, c.headers[c.pos]
}

// peek 查看当前位置之后第 offset 列
func (c *headerCursor) peek(offset int) (string, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.headers) {
		return "", false
	}
	return c.headers[i], true
}

// advance 消费 n 列
func (c *headerCursor) advance(n int) {
	c.pos += n
}
