package command

import (
	"github.com/yndnr/framekv-go/internal/backend"
	"github.com/yndnr/framekv-go/pkg/resp"
)

// replyOK is the fixed success reply for writes and tolerated
// unknown commands.
var replyOK = resp.SimpleString("OK")

func (Get) Name() string { return "get" }

func (Set) Name() string { return "set" }

func (HGet) Name() string { return "hget" }

func (HSet) Name() string { return "hset" }

func (HGetAll) Name() string { return "hgetall" }

func (HMGet) Name() string { return "hmget" }

func (Echo) Name() string { return "echo" }

func (SAdd) Name() string { return "sadd" }

func (SIsMember) Name() string { return "sismember" }

func (Unrecognized) Name() string { return "unrecognized" }

func (c Get) Execute(b *backend.Backend) resp.Frame {
	if v, ok := b.Get(c.Key); ok {
		return v
	}
	return resp.Null{}
}

func (c Set) Execute(b *backend.Backend) resp.Frame {
	b.Set(c.Key, c.Value)
	return replyOK
}

func (c HGet) Execute(b *backend.Backend) resp.Frame {
	if v, ok := b.HGet(c.Key, c.Field); ok {
		return v
	}
	return resp.Null{}
}

func (c HSet) Execute(b *backend.Backend) resp.Frame {
	b.HSet(c.Key, c.Field, c.Value)
	return replyOK
}

func (c HGetAll) Execute(b *backend.Backend) resp.Frame {
	fields, ok := b.HGetAll(c.Key)
	if !ok {
		return resp.Array{}
	}
	out := make(resp.Map, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (c HMGet) Execute(b *backend.Backend) resp.Frame {
	values, ok := b.HMGet(c.Key, c.Fields)
	if !ok {
		return resp.Array{}
	}
	return resp.Array(values)
}

func (c Echo) Execute(b *backend.Backend) resp.Frame {
	return b.Echo(c.Text)
}

func (c SAdd) Execute(b *backend.Backend) resp.Frame {
	return resp.Integer(b.SAdd(c.Key, c.Member))
}

func (c SIsMember) Execute(b *backend.Backend) resp.Frame {
	return resp.Integer(b.SIsMember(c.Key, c.Member))
}

func (Unrecognized) Execute(*backend.Backend) resp.Frame {
	return replyOK
}
