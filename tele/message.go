package tele

import (
	"github.com/golang/protobuf/proto"
)

// Messages below are maintained by hand, keep field numbers and types in sync with tele.proto.
// proto.Marshal handles them through struct tags.

type Sale struct {
	TillId   int32        `protobuf:"varint,1,opt,name=till_id,json=tillId,proto3" json:"till_id,omitempty"`
	Time     int64        `protobuf:"varint,2,opt,name=time,proto3" json:"time,omitempty"`
	Price    uint64       `protobuf:"varint,3,opt,name=price,proto3" json:"price,omitempty"`
	Tendered uint64       `protobuf:"varint,4,opt,name=tendered,proto3" json:"tendered,omitempty"`
	Exact    bool         `protobuf:"varint,5,opt,name=exact,proto3" json:"exact,omitempty"`
	Status   string       `protobuf:"bytes,6,opt,name=status,proto3" json:"status,omitempty"`
	Items    []*Sale_Item `protobuf:"bytes,7,rep,name=items,proto3" json:"items,omitempty"`
	// remaining drawer total after sale, minor units
	DrawerTotal          uint64   `protobuf:"varint,8,opt,name=drawer_total,json=drawerTotal,proto3" json:"drawer_total,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Sale) Reset()         { *m = Sale{} }
func (m *Sale) String() string { return proto.CompactTextString(m) }
func (*Sale) ProtoMessage()    {}

type Sale_Item struct {
	Name                 string   `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Amount               uint64   `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Sale_Item) Reset()         { *m = Sale_Item{} }
func (m *Sale_Item) String() string { return proto.CompactTextString(m) }
func (*Sale_Item) ProtoMessage()    {}

type Error struct {
	TillId               int32    `protobuf:"varint,1,opt,name=till_id,json=tillId,proto3" json:"till_id,omitempty"`
	Time                 int64    `protobuf:"varint,2,opt,name=time,proto3" json:"time,omitempty"`
	Message              string   `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Error) Reset()         { *m = Error{} }
func (m *Error) String() string { return proto.CompactTextString(m) }
func (*Error) ProtoMessage()    {}

// Command asks remote till to ring a sale.
type Command struct {
	Id       uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Price    uint64 `protobuf:"varint,2,opt,name=price,proto3" json:"price,omitempty"`
	Tendered uint64 `protobuf:"varint,3,opt,name=tendered,proto3" json:"tendered,omitempty"`
	// unix nanoseconds, 0 = no deadline
	Deadline             int64    `protobuf:"varint,4,opt,name=deadline,proto3" json:"deadline,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Command) Reset()         { *m = Command{} }
func (m *Command) String() string { return proto.CompactTextString(m) }
func (*Command) ProtoMessage()    {}

type Response struct {
	CommandId            uint32   `protobuf:"varint,1,opt,name=command_id,json=commandId,proto3" json:"command_id,omitempty"`
	Error                string   `protobuf:"bytes,2,opt,name=error,proto3" json:"error,omitempty"`
	Sale                 *Sale    `protobuf:"bytes,3,opt,name=sale,proto3" json:"sale,omitempty"`
	Text                 string   `protobuf:"bytes,4,opt,name=text,proto3" json:"text,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Response) Reset()         { *m = Response{} }
func (m *Response) String() string { return proto.CompactTextString(m) }
func (*Response) ProtoMessage()    {}
